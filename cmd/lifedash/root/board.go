package root

import (
	"context"

	"github.com/spf13/cobra"

	"lifedash/internal/tui"
)

func newBoardCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the live dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.svc, cmd.OutOrStdout(), tui.Options{Formatter: a.fmt, Money: a.cur, Currency: a.cfg.Currency})
		},
	}

	return cmd
}
