package cli

import (
	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
	"github.com/youruser/coverapp/internal/presets"
)

const defaultSpineThickness = 0.5

// specFlags are the geometry flags shared by the local-file commands.
type specFlags struct {
	preset string
	width  int
	height int
	spine  float64
}

func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "named panel size, e.g. 600x900")
	cmd.Flags().IntVar(&f.width, "width", 0, "panel width in pixels (default from preset)")
	cmd.Flags().IntVar(&f.height, "height", 0, "panel height in pixels (default from preset)")
	cmd.Flags().Float64Var(&f.spine, "spine", defaultSpineThickness, "spine thickness in inches")
}

// spec resolves the flags to a PanelSpec. Width and height default to the
// named preset, or to the default preset when neither is set.
func (f *specFlags) spec(ps []presets.Preset) (cover.PanelSpec, error) {
	w, h := f.width, f.height
	if f.preset != "" {
		p, ok := presets.Find(ps, f.preset)
		if !ok {
			return cover.PanelSpec{}, apperr.New(apperr.ErrCodeInvalidParameter, "unknown preset %q", f.preset)
		}
		if w == 0 {
			w = p.Width
		}
		if h == 0 {
			h = p.Height
		}
	} else if w == 0 && h == 0 {
		if p, ok := presets.Default(ps); ok {
			w, h = p.Width, p.Height
		}
	}
	return cover.NewPanelSpec(w, h, f.spine)
}
