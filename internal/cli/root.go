// Package cli wires the cobra command tree. Without a subcommand the
// interactive form is started when stdin is a terminal.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/invoke"
	"github.com/sant0-9/answergpt/internal/llm"
	"github.com/sant0-9/answergpt/internal/logging"
	"github.com/sant0-9/answergpt/internal/reply"
	"github.com/sant0-9/answergpt/internal/tui"
)

// App holds what the commands share.
type App struct {
	Config *config.Config
	// ConfigFound is false on first run, when the TUI starts with setup.
	ConfigFound bool
	// Logger is built from the flags when nil.
	Logger *zap.Logger
	// ProviderFactory replaces llm.NewProvider when set.
	ProviderFactory invoke.ProviderFactory

	IsInteractive func() bool
	RunTUI        func(tui.Options) error
}

type logFlags struct {
	file    string
	level   string
	verbose bool
}

// NewRootCmd creates the top-level "answergpt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var lf logFlags

	root := &cobra.Command{
		Use:           "answergpt",
		Short:         "Draft replies to chat messages and emails with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Logger != nil {
				return nil
			}
			logger, err := logging.New(app.Config.Log, logging.Options{
				Level:   lf.level,
				File:    lf.file,
				Verbose: lf.verbose,
			})
			if err != nil {
				return err
			}
			app.Logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() || app.RunTUI == nil {
				return cmd.Help()
			}
			return app.RunTUI(tui.Options{
				Config:          app.Config,
				NeedsSetup:      !app.ConfigFound,
				Logger:          app.Logger,
				ProviderFactory: app.ProviderFactory,
			})
		},
	}

	root.PersistentFlags().StringVar(&lf.file, "log-file", "", `log file ("-" for stderr, default in the config dir)`)
	root.PersistentFlags().StringVar(&lf.level, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&lf.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newReplyCmd(app),
		newPromptCmd(app),
		newProvidersCmd(app),
		newPingCmd(app),
	)

	return root
}

func (app *App) factory() invoke.ProviderFactory {
	if app.ProviderFactory != nil {
		return app.ProviderFactory
	}
	return func(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
		return llm.NewProvider(ctx, cfg)
	}
}

func (app *App) newService(cfg *config.Config, variant string, opts ...reply.Option) (*reply.Service, error) {
	if variant == "" {
		variant = cfg.Variant
	}
	v, err := compose.LookupVariant(variant)
	if err != nil {
		return nil, err
	}

	inv := invoke.New(cfg,
		invoke.WithProviderFactory(app.factory()),
		invoke.WithObserver(llm.NewZapObserver(app.Logger)),
		invoke.WithLogger(app.Logger),
	)
	opts = append([]reply.Option{reply.WithLogger(app.Logger)}, opts...)
	return reply.NewService(v, inv, opts...), nil
}
