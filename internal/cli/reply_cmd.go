package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/invoke"
	"github.com/sant0-9/answergpt/internal/reply"
)

// requestFlags are shared by reply and prompt.
type requestFlags struct {
	original   string
	supplement string
	tone       string
	kind       string
	level      int
	variant    string
	model      string
	apiKey     string
	provider   string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.original, "original", "o", "", `message to reply to ("-" reads stdin)`)
	flags.StringVarP(&f.supplement, "supplement", "s", "", "draft to reformulate, or key points to include")
	flags.StringVarP(&f.tone, "tone", "t", "", "tone of the reply")
	flags.StringVarP(&f.kind, "kind", "k", "", "message type: Chat or Email")
	flags.IntVarP(&f.level, "level", "l", 0, "synthetic level 0..6 (verbosity form)")
	flags.StringVar(&f.variant, "variant", "", "form variant: kind or verbosity")
	flags.StringVarP(&f.model, "model", "m", "", "model to use")
	flags.StringVar(&f.apiKey, "api-key", "", "API key for this call")
	flags.StringVarP(&f.provider, "provider", "p", "", "provider to use")
}

// config returns a copy of base pointed at the requested provider. The configured
// key belongs to the configured provider, so another provider reads its own variable.
func (f *requestFlags) config(base *config.Config) *config.Config {
	cfg := *base
	if f.provider != "" && f.provider != cfg.Provider {
		cfg.Provider = f.provider
		cfg.Model = ""
		cfg.APIKey = ""
		if p := config.GetProvider(f.provider); p != nil {
			cfg.Model = p.DefaultModel
			if p.EnvKey != "" {
				cfg.APIKey = os.Getenv(p.EnvKey)
			}
		}
	}
	return &cfg
}

// request fills unset flags from the config defaults. Explicit values are passed
// through unchecked so the service reports them.
func (f *requestFlags) request(cmd *cobra.Command, cfg *config.Config, v *compose.Variant) (compose.Request, error) {
	original := f.original
	if original == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return compose.Request{}, fmt.Errorf("reading stdin: %w", err)
		}
		original = strings.TrimRight(string(data), "\n")
	}

	req := compose.Request{
		OriginalMessage: original,
		Supplement:      f.supplement,
		Tone:            compose.Tone(f.tone),
		Kind:            compose.Kind(f.kind),
		Level:           f.level,
		Model:           f.model,
		Credential:      f.apiKey,
	}

	if req.Tone == "" {
		req.Tone = compose.Tone(cfg.Defaults.Tone)
		if !v.HasTone(req.Tone) {
			req.Tone = v.DefaultTone()
		}
	}
	if v.Mode == compose.ModeKind && req.Kind == "" {
		req.Kind = compose.Kind(cfg.Defaults.Kind)
		if !v.HasKind(req.Kind) {
			req.Kind = v.DefaultKind()
		}
	}
	if !cmd.Flags().Changed("level") {
		req.Level = cfg.Defaults.Level
		if !compose.ValidLevel(req.Level) {
			req.Level = (compose.MinLevel + compose.MaxLevel) / 2
		}
	}
	if req.Model == "" {
		req.Model = cfg.Model
	}
	if req.Credential == "" {
		req.Credential = cfg.APIKey
	}
	return req, nil
}

func newReplyCmd(app *App) *cobra.Command {
	var (
		f     requestFlags
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "reply",
		Short: "Generate a reply",
		Long: "Compose the instruction from the flags, send it to the configured provider " +
			"and print the reply. Unset flags fall back to the defaults in the config file.",
		Example: `  answergpt reply -o "Can we move the meeting to Thursday?" -s "yes, after 2pm" -k Email
  pbpaste | answergpt reply -o - --variant verbosity -l 1 -t Casual`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := f.config(app.Config)

			var opts []reply.Option
			if !quiet {
				stderr := cmd.ErrOrStderr()
				opts = append(opts, reply.WithProgress(func(p invoke.Phase) {
					if p == invoke.Started {
						fmt.Fprintln(stderr, "Generating response...")
					}
				}))
			}

			svc, err := app.newService(cfg, f.variant, opts...)
			if err != nil {
				return err
			}
			req, err := f.request(cmd, cfg, svc.Variant())
			if err != nil {
				return err
			}

			res := svc.ComposeAndInvoke(context.Background(), req)
			if !res.OK() {
				return errors.New(res.Banner())
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress output")
	return cmd
}

func newPromptCmd(app *App) *cobra.Command {
	var f requestFlags

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the instruction a reply would send, without calling the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := f.config(app.Config)
			svc, err := app.newService(cfg, f.variant)
			if err != nil {
				return err
			}
			req, err := f.request(cmd, cfg, svc.Variant())
			if err != nil {
				return err
			}

			instruction, err := svc.Instruction(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), instruction)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}
