package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/artwork"
	"github.com/youruser/coverapp/internal/config"
	"github.com/youruser/coverapp/internal/cover"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/presets"
)

type composeOptions struct {
	geometry    specFlags
	front       string
	back        string
	frontPrompt string
	backPrompt  string
	spineText   string
	spineColor  string
	labelColor  string
	qrText      string
	format      string
	output      string
}

func newComposeCmd(root *rootOptions) *cobra.Command {
	var opts composeOptions

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a full cover from local panel images",
		Long: `Compose a full cover (back, spine, front) into one image.

Panels without an image get a placeholder fill. --front-prompt and
--back-prompt generate artwork when GOOGLE_API_KEY is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd.Context(), root, opts)
		},
	}

	opts.geometry.register(cmd)
	cmd.Flags().StringVar(&opts.front, "front", "", "front panel image")
	cmd.Flags().StringVar(&opts.back, "back", "", "back panel image")
	cmd.Flags().StringVar(&opts.frontPrompt, "front-prompt", "", "generate front artwork from a prompt")
	cmd.Flags().StringVar(&opts.backPrompt, "back-prompt", "", "generate back artwork from a prompt")
	cmd.Flags().StringVar(&opts.spineText, "spine-text", "", "label drawn along the spine")
	cmd.Flags().StringVar(&opts.spineColor, "spine-color", "#000000", "spine fill color")
	cmd.Flags().StringVar(&opts.labelColor, "spine-text-color", "#FFFFFF", "spine label color")
	cmd.Flags().StringVar(&opts.qrText, "qr", "", "encode text as a QR code on the back panel")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpg, pdf (default from extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "Full_Cover.png", "output file")

	return cmd
}

func runCompose(ctx context.Context, root *rootOptions, opts composeOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spec, err := opts.geometry.spec(presets.Builtin())
	if err != nil {
		return err
	}
	front, err := readImage(opts.front)
	if err != nil {
		return err
	}
	back, err := readImage(opts.back)
	if err != nil {
		return err
	}

	frontPrompt, backPrompt := opts.frontPrompt, opts.backPrompt
	if front != nil {
		frontPrompt = ""
	}
	if back != nil {
		backPrompt = ""
	}
	if frontPrompt != "" || backPrompt != "" {
		cfg, err := config.Load(root.configPath)
		if err != nil {
			return err
		}
		gen, err := newGenerator(ctx, cfg, logger)
		if err != nil {
			return err
		}
		genCtx, cancel := context.WithTimeout(ctx, cfg.GenerateTimeout)
		defer cancel()
		gf, gb, err := artwork.GeneratePair(genCtx, gen, frontPrompt, backPrompt)
		if err != nil {
			return fmt.Errorf("generating artwork: %w", err)
		}
		if front == nil {
			front = gf
		}
		if back == nil {
			back = gb
		}
	}

	fill, err := imagepkg.ParseHexColor(opts.spineColor)
	if err != nil {
		return err
	}
	label, err := imagepkg.ParseHexColor(opts.labelColor)
	if err != nil {
		return err
	}
	composeOpts := []imagepkg.ComposeOption{imagepkg.WithSpineColors(fill, label)}
	if opts.spineText != "" {
		composeOpts = append(composeOpts, imagepkg.WithSpineLabel(opts.spineText))
	}
	if opts.qrText != "" {
		composeOpts = append(composeOpts, imagepkg.WithBackQR(opts.qrText))
	}

	layout := cover.ComputeLayout(spec)
	logger.Debug("layout\n" + cover.Describe(spec, layout))
	img, err := imagepkg.ComposeCover(spec, layout, front, back, composeOpts...)
	if err != nil {
		return err
	}
	f, err := writeImage(opts.output, img, opts.format)
	if err != nil {
		return err
	}
	prog.done("Composed cover", "output", opts.output, "format", f, "size", fmt.Sprintf("%dx%d", layout.TotalWidth(), layout.Height))
	return nil
}
