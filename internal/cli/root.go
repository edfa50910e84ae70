// Package cli implements the coverapp command-line interface.
//
// Running coverapp without a subcommand starts the HTTP server. The
// compose, extract and layout commands run the cover engines on local
// files. All commands accept --verbose for debug logging and --config for
// a TOML settings file; the logger travels through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the values shown by --version. main calls it with
// values injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

type rootOptions struct {
	verbose    bool
	configPath string
}

// Execute runs the coverapp CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "coverapp",
		Short:        "coverapp composes book covers and extracts their panels",
		Long:         `coverapp lays out a book cover as back, spine and front panels, composes artwork into it, and cuts the panels back out of a finished cover. Without a subcommand it starts the HTTP server.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, "")
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("coverapp %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("COVERAPP_CONFIG"), "TOML config file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newComposeCmd(opts))
	root.AddCommand(newExtractCmd())
	root.AddCommand(newLayoutCmd())

	return root
}
