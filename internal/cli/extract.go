package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/presets"
)

const partAll = "all"

type extractOptions struct {
	geometry specFlags
	part     string
	strict   bool
	format   string
	output   string
}

func newExtractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract [cover image]",
		Short: "Cut a panel out of a composed cover",
		Long: `Cut the front, back or spine panel out of a composed cover.

The geometry flags must match those the cover was composed with. A cover
whose width has drifted from the nominal size is rescaled horizontally
unless --strict is set. With --part all every panel is written to the
output directory as <Kind>_Cover.<ext>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), args[0], opts)
		},
	}

	opts.geometry.register(cmd)
	cmd.Flags().StringVar(&opts.part, "part", string(cover.Front), "panel to extract: front, back, spine or all")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject covers whose width differs from the nominal width")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "png", "output format: png, jpg, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for --part all (default: <Kind>_Cover.<ext>)")

	return cmd
}

func runExtract(ctx context.Context, input string, opts extractOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spec, err := opts.geometry.spec(presets.Builtin())
	if err != nil {
		return err
	}
	img, err := readImage(input)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if err := cover.CheckDimensions(b.Dx(), b.Dy(), spec, opts.strict); err != nil {
		return err
	}
	if b.Dx() != spec.TotalWidth() {
		logger.Warn("cover width differs from nominal, rescaling panel bounds", "width", b.Dx(), "nominal", spec.TotalWidth())
	}

	f, _ := imagepkg.ParseFormat(opts.format)
	title := cases.Title(language.Und)
	name := func(k cover.PanelKind) string {
		return fmt.Sprintf("%s_Cover.%s", title.String(string(k)), f.Ext())
	}

	if strings.EqualFold(opts.part, partAll) {
		panels, err := imagepkg.ExtractAll(img, spec)
		if err != nil {
			return err
		}
		for _, k := range cover.Kinds {
			path := filepath.Join(opts.output, name(k))
			if _, err := writeImage(path, panels[k], string(f)); err != nil {
				return err
			}
			logger.Debug("wrote panel", "kind", k, "path", path)
		}
		prog.done("Extracted panels", "dir", opts.output)
		return nil
	}

	kind, err := cover.ParsePanelKind(opts.part)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidPanelKind, err, "--part must be front, back, spine or all")
	}
	panel, err := imagepkg.ExtractPanel(img, kind, spec)
	if err != nil {
		return err
	}
	path := opts.output
	if path == "" {
		path = name(kind)
	}
	if _, err := writeImage(path, panel, string(f)); err != nil {
		return err
	}
	prog.done("Extracted panel", "kind", kind, "output", path)
	return nil
}
