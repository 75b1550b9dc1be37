package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kireiroutine/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "kirei",
	Short:         "KireiRoutine, a household cleaning planner",
	Long:          "KireiRoutine schedules recurring cleaning tasks on a calendar and tracks what was done and when it is next due.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $KIREI_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")

	rootCmd.AddCommand(
		newTUICmd(),
		newAgendaCmd(),
		newSummaryCmd(),
		newDayCmd(),
		newPlanCmd(),
		newBulkCmd(),
		newMoveCmd(),
		newClearCmd(),
		newSectionsCmd(),
		newDoneCmd(),
		newDueDateCmd(),
		newNoteCmd(),
		newStepCmd(),
		newCheckCmd(),
		newResetCmd(),
		newCatalogCmd(),
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
