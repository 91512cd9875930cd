package cmd

import (
	"github.com/spf13/cobra"
	"tagrade.dev/pkg/tagrade/internal/controller"
	"tagrade.dev/pkg/tagrade/internal/domain"
)

var statusFormatFlag string

// statusCmd represents the status command.
var statusCmd = newStatusCmd()

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [section] [project]",
		Short: "Show the grading state of every student for a project",
		Long: `List each student in the section with whether they submitted the project,
whether it has been graded and by whom, and the total on their scoresheet.
Nothing is modified.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := controller.ParseStatusFormat(statusFormatFlag)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}

			return workflow.Status(cmd.Context(), domain.StatusArgs{Config: cfg, Format: format})
		},
	}

	cmd.Flags().StringVarP(&statusFormatFlag, formatFlagName, "f", string(controller.StatusTable), "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
