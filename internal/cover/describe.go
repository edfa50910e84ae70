package cover

import (
	"fmt"
	"strings"
)

// Describe renders a layout as a short text table, one line per panel.
func Describe(s PanelSpec, l Layout) string {
	lines := []string{
		fmt.Sprintf("# %dx%d panels, spine %.3gin (%dpx), total %dx%d",
			s.PanelWidth, s.PanelHeight, s.SpineThicknessInches, s.SpinePixels(), l.TotalWidth(), l.Height),
	}
	for _, k := range Kinds {
		r, _ := l.Range(k)
		lines = append(lines, fmt.Sprintf("%-5s [%d, %d) width=%d", k, r.Start, r.End, r.Width()))
	}
	return strings.Join(lines, "\n")
}
