package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func newRuntimeCmd(flags *globalFlags) *cobra.Command {
	var unit string
	var all bool

	cmd := &cobra.Command{
		Use:   "runtime",
		Short: "Print elapsed runtime since the epoch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := engine.ParseUnit(unit)
			if !ok {
				return fmt.Errorf("unknown unit %q (one of %s)", unit, unitNames())
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			rt := engine.NewRuntime(a.svc.Epoch())
			rt.SetUnit(u)
			rt.Tick(a.svc.Now())

			out := cmd.OutOrStdout()
			if !all {
				fmt.Fprintf(out, "%s %s\n", ui.Big.Render(rt.Display(a.fmt)), ui.Muted.Render(string(rt.Unit)))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "System Runtime"))
			for _, u := range engine.AllUnits {
				fmt.Fprintln(out, ui.LabelValue(fmt.Sprintf("%-12s", u), a.fmt.Convert(rt.Elapsed, u)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", string(engine.DefaultUnit), "Display unit ("+unitNames()+")")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print every unit")
	return cmd
}

func unitNames() string {
	names := make([]string, 0, len(engine.AllUnits))
	for _, u := range engine.AllUnits {
		names = append(names, string(u))
	}
	return strings.Join(names, "|")
}
