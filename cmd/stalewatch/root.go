// cmd/stalewatch/root.go
package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tamzrod/stalewatch/internal/config"
	"github.com/tamzrod/stalewatch/internal/engine"
	"github.com/tamzrod/stalewatch/internal/logging"
	"github.com/tamzrod/stalewatch/internal/notify"
	nslack "github.com/tamzrod/stalewatch/internal/notify/slack"
	"github.com/tamzrod/stalewatch/internal/resolver"
	"github.com/tamzrod/stalewatch/internal/state"
	"github.com/tamzrod/stalewatch/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	configPath string
	dryRun     bool
	logLevel   string
}

func newRootCmd(stdout, stderr io.Writer, lookup config.LookupFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "stalewatch",
		Short: "Report Chef nodes that stopped checking in",
		Long: `stalewatch queries the Chef server for nodes whose last check-in is older
than the stale threshold, compares them with the previous run, posts what
went stale or freshened to Slack, and records the new stale set.

Run it from cron. Only one instance may use a given state file at a time.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, stdout, stderr, lookup)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Optional YAML config file (environment overrides it)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the message instead of posting it and leave the state file untouched")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", logging.LevelInfo, "Log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer, lookup config.LookupFunc) error {
	logger, err := logging.Configure(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(opts.configPath, lookup)
	if err != nil {
		return err
	}
	if opts.dryRun {
		cfg.DryRun = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	config.Normalize(cfg)

	// --------------------
	// Build collaborators
	// --------------------

	res, err := resolver.Build(cfg)
	if err != nil {
		return err
	}

	var notifier notify.Notifier
	if cfg.DryRun {
		notifier = notify.NewPreview(stdout)
	} else {
		notifier, err = nslack.Build(cfg)
		if err != nil {
			return err
		}
	}

	store := state.NewStore(cfg.StateFile)

	provider := telemetry.NewProvider(logger)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	eng, err := engine.New(
		engine.Config{
			IconURL: cfg.Slack.IconURL,
			Persist: !cfg.DryRun,
		},
		engine.Deps{
			Resolver: res,
			Store:    store,
			Notifier: notifier,
			Tracer:   provider.Tracer("stalewatch"),
			Logger:   logger,
		},
	)
	if err != nil {
		return err
	}

	// --------------------
	// One pass, bounded
	// --------------------

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	result, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	logger.Debug("run complete",
		"notified", result.Notified,
		"persisted", result.Persisted,
		"state_file", store.Path(),
	)
	return nil
}
