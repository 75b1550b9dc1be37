package root

import (
	"github.com/spf13/cobra"

	"kireiroutine/internal/ui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the calendar (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

func runTUI() error {
	p, cfg, cleanup, err := openPlanner()
	if err != nil {
		return err
	}
	defer cleanup()
	return ui.Run(p, cfg)
}
