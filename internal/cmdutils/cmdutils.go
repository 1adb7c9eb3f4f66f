// Package cmdutils carries the shared command scaffolding: config lookup,
// logger initialisation and the cobra command wrapper used by every
// subcommand.
package cmdutils

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/cinegram/cinegram/internal/config"
)

// configLocations are tried in order when no explicit path is given.
var configLocations = []string{
	"config.yaml",
	"/etc/cinegram/config.yaml",
}

func CobraCommand(
	use, short, long string,
	businessFunc func(context.Context, *config.Config) error,
) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if err := InitLogger(cfg.Logger); err != nil {
				return oops.In("main").Wrapf(err, "Failed to initialise the logger")
			}

			slogctx.Debug(cmd.Context(), "Starting the application", slog.String("command", use))

			if err := businessFunc(cmd.Context(), cfg); err != nil {
				return oops.In("main").Wrapf(err, "Failed to start the main business application")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the config file")

	return cmd
}

// LoadConfig resolves the config file. An explicit path wins; otherwise the
// standard locations, including $HOME/.cinegram, are tried in order.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	candidates := configLocations
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".cinegram", "config.yaml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return config.Load(candidate)
		}
	}

	return nil, fmt.Errorf("no config file found in %v", candidates)
}

// InitLogger sets the process-wide slog default, wrapped in the slog-context
// handler so values attached via slogctx flow into every record.
func InitLogger(cfg config.Logger) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	switch cfg.Format {
	case "text":
		inner = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		inner = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	slog.SetDefault(slog.New(slogctx.NewHandler(inner, nil)))

	return nil
}
