// Package cli implements the tourmaline command-line interface.
//
// This package provides commands for solving travelling-salesman instances,
// rendering the optimal tour as route plots or node-link diagrams, and
// serving the solver over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Compute the optimal tour for a distance-matrix instance
//   - render: Solve and write SVG, PNG, PDF, JSON, DOT, or text artifacts
//   - serve: Run the HTTP solve API
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/mvoelker/tourmaline/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvoelker/tourmaline/pkg/buildinfo"
	"github.com/mvoelker/tourmaline/pkg/observability"
	"github.com/mvoelker/tourmaline/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "tourmaline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "tourmaline",
		Short:        "Tourmaline finds provably optimal round trips",
		Long:         `Tourmaline is a CLI tool for solving travelling-salesman instances exactly and visualizing the optimal tour, for the instance sizes where exact answers are still within reach.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.SetSolverHooks(&solverLogHooks{logger: c.Logger})
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tourmaline/config.toml)")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for one-shot commands. Solve and
// render live and die with a single pipeline execution, so they run
// uncached; the serve command wires its own memory cache.
func newRunner(ctx context.Context) *pipeline.Runner {
	return pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
}

// configDir returns the config directory using XDG standard
// (~/.config/tourmaline/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
