package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func newTargetCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Show or change the countdown target",
	}
	cmd.AddCommand(
		newTargetShowCmd(flags),
		newTargetSetCmd(flags),
		newTargetLabelCmd(flags),
		newTargetClearCmd(flags),
	)
	return cmd
}

func printCountdown(out io.Writer, c *engine.Countdown) {
	fmt.Fprintln(out, ui.Heading(ui.IconTarget, c.Label))
	switch c.State {
	case engine.CountdownUnset:
		fmt.Fprintln(out, ui.Muted.Render("No target set."))
	case engine.CountdownReached:
		fmt.Fprintln(out, ui.Good.Render(ui.IconOK+" TARGET REACHED")+" "+ui.Muted.Render(c.Timestamp))
	case engine.CountdownCounting:
		fmt.Fprintln(out, ui.Big.Render(c.Remaining.String())+" "+ui.Muted.Render("until "+c.Timestamp))
	}
}

func newTargetShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show time remaining to the target",
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
			printCountdown(cmd.OutOrStdout(), d.Countdown)
			return nil
		},
	}
}

func newTargetSetCmd(flags *globalFlags) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "set <timestamp>",
		Short: "Set the target (e.g. 2026-01-01T00:00)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			var lbl *string
			if cmd.Flags().Changed("label") {
				lbl = &label
			}
			c, err := a.svc.SetTarget(ctx, args[0], lbl)
			if err != nil {
				return err
			}
			printCountdown(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label shown above the countdown")
	return cmd
}

func newTargetLabelCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "label <text>",
		Short: "Rename the target",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := a.svc.SetTargetLabel(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printCountdown(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newTargetClearCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := a.svc.SetTarget(ctx, "", nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconOK+" target cleared")
			return nil
		},
	}
}
