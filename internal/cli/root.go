// Package cli wires the cobra command tree. Running tuntas with no
// subcommand starts the interactive TUI; subcommands cover the same
// operations for scripting.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tuntas/internal/action"
	"tuntas/internal/api"
	"tuntas/internal/config"
	"tuntas/internal/tui"
	"tuntas/internal/ui"
)

// App carries the resolved config and the shared collaborators every
// command uses.
type App struct {
	Cfg    *config.Config
	Log    *log.Logger
	Client *api.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	var apiURL, email, logLevel string

	cmd := &cobra.Command{
		Use:          "tuntas",
		Short:        "Activity and todo tracker backed by the activity-groups API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tuntas

  # Scriptable commands
  tuntas activities list
  tuntas todos add 7 "Buy milk" --priority normal
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return tui.Run(app.Client, app.Log)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if email != "" {
			cfg.Email = email
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		app.Cfg = cfg
		app.Log = newLogger(cfg.LogLevel)
		app.Client = api.New(cfg.APIURL, cfg.Email, &http.Client{}, app.Log)
		return nil
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the remote service (overrides config)")
	cmd.PersistentFlags().StringVar(&email, "email", "", "Account email scoping the activities (overrides config)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	cmd.AddCommand(newActivitiesCmd(app))
	cmd.AddCommand(newTodosCmd(app))

	return cmd
}

func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "tuntas",
		ReportTimestamp: false,
	})
}

// ctx bounds a one-shot command with the configured request timeout.
func (a *App) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.Cfg.Timeout())
}

// reportOutcome prints the outcome of a dispatch. Failures carry no
// detail beyond the tag; the dispatcher already logged the cause.
func reportOutcome(out action.Outcome, okMsg string) error {
	if !out.Success {
		return fmt.Errorf("%s failed", out.SubAction)
	}
	ui.OK(okMsg)
	return nil
}
