package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sant0-9/answergpt/internal/config"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newProvidersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the supported providers and their models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, len(config.Providers))
			for i, p := range config.Providers {
				key := "no"
				if p.NeedsAPIKey {
					key = "yes"
					if p.EnvKey != "" {
						key += " (" + p.EnvKey + ")"
					}
				}
				name := p.ID
				if p.ID == app.Config.Provider {
					name += " *"
				}
				rows[i] = []string{name, p.Name, key, strings.Join(p.Models, ", ")}
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "API KEY", "MODELS").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return styleHeader
					}
					return styleCell
				})

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newPingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured provider is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()

			provider, err := app.factory()(ctx, cfg)
			if err != nil {
				return err
			}
			if err := provider.Ping(ctx); err != nil {
				return fmt.Errorf("%s is not reachable: %w", provider.Name(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable (model %s)\n", provider.Name(), cfg.Model)
			return nil
		},
	}
}
