package cmd

import (
	"cyberlearn_backend/internal/app"
	"cyberlearn_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.NewApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	return application.Run()
}
