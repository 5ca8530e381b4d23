package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func newStatusCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "One-screen summary of every panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			d, err := a.svc.OpenDashboard(ctx)
			if err != nil {
				return err
			}
			now := a.svc.Now()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Runtime"))
			fmt.Fprintln(out, ui.LabelValue("Seconds", d.Runtime.Display(a.fmt)))
			fmt.Fprintln(out, ui.LabelValue("Days", a.fmt.Convert(d.Runtime.Elapsed, engine.UnitDays)))
			fmt.Fprintln(out, "")

			year := engine.YearElapsedPercent(now)
			fmt.Fprintln(out, ui.Heading(ui.IconGoal, "Resolutions"))
			fmt.Fprintln(out, ui.LabelValue("Aggregate", fmt.Sprintf("%.0f%% of %d", d.Resolutions.AggregateProgress(), d.Resolutions.Len())))
			fmt.Fprintln(out, ui.LabelValue("Year elapsed", fmt.Sprintf("%s %.1f%%", ui.Bar(year, 20), year)))
			fmt.Fprintln(out, "")

			printCountdown(out, d.Countdown)
			fmt.Fprintln(out, "")

			bal := d.Ledger.Balance()
			fmt.Fprintln(out, ui.Heading(ui.IconBody, d.Profile.Name))
			fmt.Fprintln(out, ui.LabelValue("Age", a.svc.Age()))
			fmt.Fprintln(out, ui.LabelValue("BMI", fmt.Sprintf("%.1f", d.Profile.BMI())))
			fmt.Fprintln(out, ui.LabelValue("Looks", d.Appearance.Average()))
			fmt.Fprintln(out, ui.LabelValue("Balance", ui.Signed(a.money(bal), bal.IsNegative())))
			return nil
		},
	}

	return cmd
}
