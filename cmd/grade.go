package cmd

import (
	"github.com/spf13/cobra"
	"tagrade.dev/pkg/tagrade/internal/domain"
)

// gradeCmd represents the grade command.
var gradeCmd = newGradeCmd()

func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade [section] [project]",
		Short: "Start an interactive grading session",
		Long: `Discover every student in the section and open the grading menu.

The section and project may be given as arguments or through --section and
--project. Without a project number tagrade asks for one each time a grading
option is chosen.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}

			return workflow.Grade(cmd.Context(), domain.GradeArgs{Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(gradeCmd)
}
