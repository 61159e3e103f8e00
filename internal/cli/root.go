package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "despacho" command. Running it with
// no subcommand opens the interactive console.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "despacho",
		Short:        "Terminal console for expenses, suppliers, projects and billing",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	root.AddCommand(
		newSeedCmd(app),
		newExportCmd(app),
	)

	return root
}
