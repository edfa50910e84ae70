package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/api"
	"github.com/youruser/coverapp/internal/artwork"
	"github.com/youruser/coverapp/internal/config"
	"github.com/youruser/coverapp/internal/presets"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config and PORT)")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, port string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if !opts.verbose {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	ps, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		return err
	}
	gen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(api.NewHandler(cfg, gen, ps, logger), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", "http://localhost:"+cfg.Port, "presets", len(ps), "generation", cfg.GenerationEnabled())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newGenerator builds the artwork generator from cfg. Without an API key
// prompts yield placeholder panels.
func newGenerator(ctx context.Context, cfg config.Config, logger *log.Logger) (artwork.Generator, error) {
	if !cfg.GenerationEnabled() {
		logger.Warn("GOOGLE_API_KEY not set; prompts will produce placeholder panels")
		return artwork.Disabled{}, nil
	}
	g, err := artwork.NewGemini(ctx, cfg.GoogleAPIKey, cfg.ImageModel, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("artwork generation enabled", "model", g.Model(), "rate_interval", cfg.RateInterval, "cache_ttl", cfg.CacheTTL)
	return artwork.NewCached(g, cfg.RateInterval, cfg.RateBurst, cfg.CacheTTL, cfg.GenerateTimeout, g.Model()), nil
}
