package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func newResolutionsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolutions",
		Aliases: []string{"res"},
		Short:   "Manage yearly resolutions",
	}
	cmd.AddCommand(
		newResolutionsListCmd(flags),
		newResolutionsAddCmd(flags),
		newResolutionsProgressCmd(flags),
		newResolutionsStarsCmd(flags),
		newResolutionsRemoveCmd(flags),
	)
	return cmd
}

func newResolutionsListCmd(flags *globalFlags) *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resolutions with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := a.svc.Load(ctx)
			if err != nil {
				return err
			}
			printResolutions(cmd, engine.NewResolutions(st.Resolutions), showIDs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show record ids")
	return cmd
}

func printResolutions(cmd *cobra.Command, res *engine.Resolutions, showIDs bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconGoal, "Resolutions"))
	if res.Len() == 0 {
		fmt.Fprintln(out, ui.Muted.Render("(none)"))
		return
	}
	for i, r := range res.Items() {
		line := fmt.Sprintf("%d. %s %s %s %s %3d%%",
			i+1, ui.Strong.Render(r.Title), ui.Muted.Render(string(r.Priority)),
			ui.Stars(r.Stars, engine.MaxStars), ui.Bar(float64(r.Progress), 20), r.Progress)
		if showIDs {
			line += " " + ui.Muted.Render(r.ID)
		}
		fmt.Fprintln(out, line)
		if r.Description != "" {
			fmt.Fprintln(out, "   "+ui.Muted.Render(r.Description))
		}
	}
	fmt.Fprintln(out, ui.LabelValue("Aggregate", fmt.Sprintf("%.0f%%", res.AggregateProgress())))
}

func newResolutionsAddCmd(flags *globalFlags) *cobra.Command {
	var desc, priority string
	var stars, progress int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a resolution",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := a.svc.AddResolution(ctx, engine.Resolution{
				Title:       args[0],
				Description: desc,
				Priority:    engine.Priority(strings.ToUpper(strings.TrimSpace(priority))),
				Stars:       stars,
				Progress:    progress,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added %s %s\n", ui.IconOK, ui.Strong.Render(r.Title), ui.Muted.Render(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.PriorityCore), "Priority (LOW|CORE|HIGH|CRITICAL or any label)")
	cmd.Flags().IntVarP(&stars, "stars", "s", 3, "Importance stars (0-5)")
	cmd.Flags().IntVar(&progress, "progress", 0, "Starting progress (0-100)")
	return cmd
}

func parseIntArg(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func newResolutionsProgressCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <index|id> <value>",
		Short: "Set progress (0-100) of a resolution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseIntArg("value", args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := a.svc.SetResolutionProgress(ctx, args[0], value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %d%%\n", ui.IconOK, ui.Strong.Render(r.Title), ui.Bar(float64(r.Progress), 20), r.Progress)
			return nil
		},
	}
	return cmd
}

func newResolutionsStarsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stars <index|id> <n>",
		Short: "Set importance stars (0-5) of a resolution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIntArg("stars", args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := a.svc.SetResolutionStars(ctx, args[0], n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconOK, ui.Strong.Render(r.Title), ui.Stars(r.Stars, engine.MaxStars))
			return nil
		},
	}
	return cmd
}

func newResolutionsRemoveCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <index|id>",
		Aliases: []string{"rm"},
		Short:   "Remove a resolution",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := a.svc.RemoveResolution(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s\n", ui.IconOK, ui.Strong.Render(r.Title))
			return nil
		},
	}
	return cmd
}
