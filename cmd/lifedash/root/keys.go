package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lifedash/internal/ui"
)

func newKeysCmd(flags *globalFlags) *cobra.Command {
	var full, asYAML bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Dump the raw persisted key space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := a.svc.KVRepo().List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				dump := make(map[string]string, len(entries))
				for _, e := range entries {
					dump[e.Key] = e.Value
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(dump); err != nil {
					return fmt.Errorf("encode keys: %w", err)
				}
				return enc.Close()
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty store)"))
				return nil
			}
			for _, e := range entries {
				v := e.Value
				if !full {
					v = truncate(v, 72)
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(e.Key), v, ui.Muted.Render(e.UpdatedAt.Format("2006-01-02 15:04:05")))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Do not truncate long values")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print every key as a YAML mapping")
	return cmd
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
