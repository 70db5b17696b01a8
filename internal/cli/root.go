// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/fakegpt-tui/internal/backend"
	"github.com/jeranaias/fakegpt-tui/internal/config"
	"github.com/jeranaias/fakegpt-tui/internal/i18n"
	"github.com/jeranaias/fakegpt-tui/internal/logging"
	"github.com/jeranaias/fakegpt-tui/internal/store"
)

// Version information (set from main at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	backend    string
	lang       string
	timeout    time.Duration
	debug      bool
	dotenv     string
}

// app is what every subcommand runs against once the persistent pre-run has
// loaded the configuration.
type app struct {
	opts       rootOptions
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	closer     io.Closer
}

// load resolves the configuration in order: defaults, file, .env, environment,
// flags. It then opens the log file.
func (a *app) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.opts.dotenv); err != nil {
		return err
	}

	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend.URL = a.opts.backend
	}
	if flags.Changed("lang") {
		if i18n.IsSupported(a.opts.lang) {
			cfg.UI.Language = a.opts.lang
		} else {
			cfg.UI.Language = string(i18n.Match(a.opts.lang))
		}
	}
	if flags.Changed("timeout") {
		cfg.Backend.Timeout = a.opts.timeout
	}
	if a.opts.debug {
		cfg.Log.Level = "debug"
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, closer, err := logging.Open(logging.Options{
		Path:      cfg.Log.Path,
		Level:     cfg.Log.Level,
		AddSource: a.opts.debug,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	a.configPath = a.opts.configPath
	if a.configPath == "" {
		if p, err := config.ConfigPath(); err == nil {
			a.configPath = p
		}
	}

	logger.Debug("configuration loaded", "backend", cfg.Backend.URL, "language", cfg.UI.Language, "command", cmd.Name())
	return nil
}

// close releases the log file. Safe to call more than once.
func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// client builds the backend client from the loaded configuration.
func (a *app) client() *backend.Client {
	return backend.NewClient(backend.Config{
		BaseURL:   a.cfg.Backend.URL,
		Timeout:   a.cfg.Backend.Timeout,
		RateLimit: a.cfg.Backend.RateLimit,
		Burst:     a.cfg.Backend.Burst,
		UserAgent: backend.DefaultUserAgent + "/" + Version,
		Logger:    a.logger,
	})
}

// newStore builds a conversation store over api.
func (a *app) newStore(ctx context.Context, api store.API) *store.Store {
	return store.New(api, store.Options{
		Context: ctx,
		Logger:  a.logger,
		Lang:    a.lang(),
	})
}

func (a *app) lang() i18n.Lang {
	return i18n.Lang(a.cfg.UI.Language)
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the fakegpt command tree. Running it without a
// subcommand starts the TUI. Execute also releases what the pre-run opened;
// callers running the tree themselves leave the log file open until exit.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "fakegpt",
		Short:         "Terminal client for the FakeGPT chat backend",
		Long:          "fakegpt talks to a FakeGPT backend: browse chats, send text and images, and read replies.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "init":
				return nil
			}
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, "config", "c", "", "config file (default ~/.fakegpt/config.toml)")
	pf.StringVar(&a.opts.backend, "backend", "", "backend URL (e.g. http://localhost:8000)")
	pf.StringVarP(&a.opts.lang, "lang", "l", "", "interface language: pl, en, uk")
	pf.DurationVar(&a.opts.timeout, "timeout", 0, "per-request timeout (e.g. 30s)")
	pf.BoolVar(&a.opts.debug, "debug", false, "write debug lines to the log file")
	pf.StringVar(&a.opts.dotenv, "env-file", ".env", "dotenv file loaded before the environment is read")

	root.AddCommand(
		newTUICmd(a),
		newChatCmd(a),
		newChatsCmd(a),
		newSendCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root, a
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, args []string) error {
	root, a := newRootCmd()
	root.SetArgs(args)
	return run(ctx, root, a)
}

// run executes root and closes the log file whether or not the command
// failed. Cobra skips post-run hooks after an error.
func run(ctx context.Context, root *cobra.Command, a *app) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen client (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, DimStyle.Render("# "+a.configPath))
			fmt.Fprint(out, a.cfg.String())
			return nil
		},
	}
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

// newConfigInitCmd writes the built-in defaults. It runs without loading the
// configuration, so a broken or missing file can be replaced.
func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Default().Save(a.opts.configPath, force)
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fakegpt %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}
