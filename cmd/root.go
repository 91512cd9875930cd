// Package cmd provides the root command and CLI setup for tagrade.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"tagrade.dev/pkg/tagrade/internal/adapter"
	"tagrade.dev/pkg/tagrade/internal/controller"
	"tagrade.dev/pkg/tagrade/internal/domain"
)

var fsAdapter adapter.SubmissionFSAdapter
var identity adapter.IdentityProvider
var workflow domain.Workflow
var ui controller.UI

var handinPathFlag string
var sectionFlag int
var projectFlag int
var editorFlag string
var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSubmissionFSAdapter()
	identity = adapter.NewLocalIdentityProvider()
	workflow = domain.NewWorkflow(fsAdapter, ui, identity, newEditorLauncher)
}

func newEditorLauncher(editor string) adapter.EditorLauncher {
	return adapter.NewLocalEditorLauncher(editor)
}

const rootLongDescription = `Tagrade walks a teaching assistant through grading one lab section.

Student submissions live under <path>/Section<NNN>/<netid>/<project>/. For each
submission tagrade opens the scoresheet and the student's files in an editor,
checks that the total written on the scoresheet matches the sum of its rubric
items, offers to fix it, and marks the submission graded.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "tagrade",
		Short:        "231 lab section grading assistant",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&handinPathFlag, pathFlagName, "p", viper.GetString(pathConfigKey), "handin root containing the Section<NNN> directories")
	bindFlagToConfig(flags.Lookup(pathFlagName), pathConfigKey)

	flags.IntVarP(&sectionFlag, sectionFlagName, "s", viper.GetInt(sectionConfigKey), "section number to grade")
	bindFlagToConfig(flags.Lookup(sectionFlagName), sectionConfigKey)

	flags.IntVarP(&projectFlag, projectFlagName, "n", viper.GetInt(projectConfigKey), "project number (0 asks each time)")
	bindFlagToConfig(flags.Lookup(projectFlagName), projectConfigKey)

	flags.StringVarP(&editorFlag, editorFlagName, "e", viper.GetString(editorConfigKey), "editor command used to open submission files")
	bindFlagToConfig(flags.Lookup(editorFlagName), editorConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
