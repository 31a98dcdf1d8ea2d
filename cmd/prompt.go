package cmd

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/prompt"
	"fmt"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the model prompts used for content generation",
}

var promptAssessmentCmd = &cobra.Command{
	Use:   "assessment",
	Short: "Print the assessment prompt for a topic and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, topic, level, err := promptInputs(cmd)
		if err != nil {
			return err
		}
		goal, _ := cmd.Flags().GetString("career-goal")
		fmt.Fprintln(cmd.OutOrStdout(), prompt.AssessmentPrompt(c, topic, level, goal))
		return nil
	},
}

var promptPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the learning plan prompt for a topic and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, topic, level, err := promptInputs(cmd)
		if err != nil {
			return err
		}
		weeks, _ := cmd.Flags().GetInt("weeks")
		focus, _ := cmd.Flags().GetStringSlice("focus")
		fmt.Fprintln(cmd.OutOrStdout(), prompt.LearningPlanPrompt(c, prompt.PlanRequest{
			Topic:                 topic,
			Level:                 level,
			DurationWeeks:         weeks,
			FocusAreas:            focus,
			IncludeLabs:           true,
			IncludeCertifications: true,
		}))
		return nil
	},
}

func promptInputs(cmd *cobra.Command) (*catalog.Catalog, string, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", "", err
	}
	c, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, "", "", err
	}
	topic, _ := cmd.Flags().GetString("topic")
	level, _ := cmd.Flags().GetString("level")
	if err := c.ValidateTopic(topic); err != nil {
		return nil, "", "", err
	}
	if err := c.ValidateLevel(level); err != nil {
		return nil, "", "", err
	}
	return c, topic, level, nil
}

func init() {
	for _, sub := range []*cobra.Command{promptAssessmentCmd, promptPlanCmd} {
		sub.Flags().String("topic", "network-security", "Topic key")
		sub.Flags().String("level", "beginner", "Skill level key")
		promptCmd.AddCommand(sub)
	}
	promptAssessmentCmd.Flags().String("career-goal", "student", "Career goal key or free text")
	promptPlanCmd.Flags().Int("weeks", 8, "Plan duration in weeks")
	promptPlanCmd.Flags().StringSlice("focus", nil, "Focus areas")
}
