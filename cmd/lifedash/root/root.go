package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifedash/internal/ui"
)

const Version = "0.1.0"

// Persistent flags shared by every command.
type globalFlags struct {
	configFile string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "lifedash",
		Short:         "lifedash — local-first personal life dashboard",
		Long:          "lifedash tracks runtime since an epoch, yearly resolutions, a countdown target and an operator ledger, all stored locally.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file (default $HOME/.lifedash/lifedash.yaml)")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides config)")

	cmd.AddCommand(
		newBoardCmd(flags),
		newRuntimeCmd(flags),
		newResolutionsCmd(flags),
		newTargetCmd(flags),
		newLedgerCmd(flags),
		newProfileCmd(flags),
		newStatusCmd(flags),
		newKeysCmd(flags),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
