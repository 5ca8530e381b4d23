package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func newProfileCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Operator profile: body metrics, looks and photo",
	}
	cmd.AddCommand(
		newProfileShowCmd(flags),
		newProfileSetCmd(flags),
		newProfileLooksCmd(flags),
		newProfileImageCmd(flags),
	)
	return cmd
}

func printProfile(out io.Writer, p engine.Profile, age int) {
	fmt.Fprintln(out, ui.Heading(ui.IconBody, p.Name))
	fmt.Fprintln(out, ui.Muted.Render(p.Description))
	fmt.Fprintln(out, ui.LabelValue("Age", age))
	fmt.Fprintln(out, ui.LabelValue("Weight", engine.FormatMetric(p.WeightKg)+" kg"))
	fmt.Fprintln(out, ui.LabelValue("Height", engine.FormatMetric(p.HeightCm)+" cm"))
	fmt.Fprintln(out, ui.LabelValue("BMI", fmt.Sprintf("%.1f", p.BMI())))
	if p.Image != "" {
		fmt.Fprintln(out, ui.LabelValue("Image", fmt.Sprintf("%d bytes", len(p.Image))))
	}
}

func printAppearance(out io.Writer, a engine.Appearance) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconSparkle+" Looks"))
	for _, key := range engine.AppearanceKeys {
		v, _ := a.Score(key)
		fmt.Fprintf(out, "- %-8s %s %3d\n", key, ui.Bar(float64(v), 20), v)
	}
	fmt.Fprintln(out, ui.LabelValue("Average", a.Average()))
}

func newProfileShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show profile and looks",
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
			printProfile(cmd.OutOrStdout(), st.Profile, a.svc.Age())
			fmt.Fprintln(cmd.OutOrStdout())
			printAppearance(cmd.OutOrStdout(), st.Appearance)
			return nil
		},
	}
}

func newProfileSetCmd(flags *globalFlags) *cobra.Command {
	var name, desc string
	var weight, height float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update name, description, weight or height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in engine.ProfileUpdate
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("desc") {
				in.Description = &desc
			}
			if cmd.Flags().Changed("weight") {
				in.WeightKg = &weight
			}
			if cmd.Flags().Changed("height") {
				in.HeightCm = &height
			}
			if in == (engine.ProfileUpdate{}) {
				return fmt.Errorf("nothing to update (use --name, --desc, --weight or --height)")
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := a.svc.UpdateProfile(ctx, in)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p, a.svc.Age())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Operator name")
	cmd.Flags().StringVar(&desc, "desc", "", "Operator description")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	return cmd
}

func newProfileLooksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "looks <key> <value>",
		Short: "Set one looks score (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseIntArg("value", args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			ap, err := a.svc.SetAppearanceScore(ctx, args[0], v)
			if err != nil {
				return err
			}
			printAppearance(cmd.OutOrStdout(), ap)
			return nil
		},
	}
}

func newProfileImageCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "image <path>",
		Short: "Load a profile photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := a.svc.SetProfileImage(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s image stored (%d bytes)\n", ui.IconOK, len(p.Image))
			return nil
		},
	}
}
