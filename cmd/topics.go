package cmd

import (
	"cyberlearn_backend/internal/catalog"
	"fmt"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics, levels and career goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := catalog.Load(cfg.Catalog.File)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printEntries := func(title string, entries []catalog.Entry) {
			fmt.Fprintln(out, title)
			for _, e := range entries {
				fmt.Fprintf(out, "  %-24s %s\n", e.Key, e.Description)
			}
		}
		printEntries("Topics:", c.Topics)
		printEntries("Levels:", c.Levels)
		printEntries("Career goals:", c.CareerGoals)
		return nil
	},
}
