package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/cover"
	"github.com/youruser/coverapp/internal/presets"
)

func newLayoutCmd() *cobra.Command {
	var (
		geometry specFlags
		asJSON   bool
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print panel boundaries for a cover size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, p := range presets.Builtin() {
					fmt.Fprintf(out, "%-10s %5dx%-5d %s\n", p.Name, p.Width, p.Height, p.Description)
				}
				return nil
			}

			spec, err := geometry.spec(presets.Builtin())
			if err != nil {
				return err
			}
			layout := cover.ComputeLayout(spec)
			if !asJSON {
				fmt.Fprintln(out, cover.Describe(spec, layout))
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Spec   cover.PanelSpec `json:"spec"`
				Layout cover.Layout    `json:"layout"`
			}{spec, layout})
		},
	}

	geometry.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&list, "presets", false, "list the named panel sizes")
	return cmd
}
