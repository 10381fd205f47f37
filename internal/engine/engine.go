// internal/engine/engine.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tamzrod/stalewatch/internal/notify"
	"github.com/tamzrod/stalewatch/internal/resolver"
	"github.com/tamzrod/stalewatch/internal/state"
	"github.com/tamzrod/stalewatch/internal/telemetry"
)

// Resolver produces the current stale set.
type Resolver interface {
	Resolve(ctx context.Context) (state.Set, resolver.Result, error)
}

// Store loads and replaces the known stale set.
type Store interface {
	Load() (state.Set, error)
	Save(s state.Set) error
}

// Config is the per-run behavior the engine needs.
type Config struct {
	IconURL string
	// Persist=false leaves the snapshot untouched (dry runs).
	Persist bool
}

// Deps are the collaborators of one run.
type Deps struct {
	Resolver Resolver
	Store    Store
	Notifier notify.Notifier
	Tracer   trace.Tracer // optional
	Logger   *slog.Logger // optional
}

// Result describes what one run did.
type Result struct {
	Known          state.Set
	Current        state.Set
	Classification state.Classification
	Message        notify.Message

	Notified  bool
	NotifyErr error // delivery failure, never fatal
	Persisted bool
}

// Engine owns the per-run lifecycle: load, resolve, classify, format,
// log, notify, persist. One Run per process.
type Engine struct {
	cfg  Config
	deps Deps
	now  func() time.Time
}

// New creates an engine. Resolver, Store and Notifier are required.
func New(cfg Config, deps Deps) (*Engine, error) {
	if deps.Resolver == nil {
		return nil, errors.New("engine: resolver required")
	}
	if deps.Store == nil {
		return nil, errors.New("engine: store required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("engine: notifier required")
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer("stalewatch/engine")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Engine{cfg: cfg, deps: deps, now: time.Now}, nil
}

// Run performs exactly one pass.
//
// The snapshot is loaded before the inventory is queried so a corrupt
// snapshot aborts before any network call. Any error before persist
// leaves the previous snapshot in place; the next run re-derives the
// same diff. Notification failures are logged and reported in Result
// but never abort the run.
func (e *Engine) Run(ctx context.Context) (res Result, err error) {
	ctx, span := e.deps.Tracer.Start(ctx, "stalewatch.run")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
		}
		span.End()
	}()

	// ---- load known ----
	if err := telemetry.RunStep(ctx, e.deps.Tracer, "load", func(context.Context) error {
		known, err := e.deps.Store.Load()
		if err != nil {
			return err
		}
		res.Known = known
		return nil
	}); err != nil {
		return res, fmt.Errorf("engine: load known stale set: %w", err)
	}

	// ---- resolve current ----
	if err := telemetry.RunStep(ctx, e.deps.Tracer, "resolve", func(ctx context.Context) error {
		current, rr, err := e.deps.Resolver.Resolve(ctx)
		if err != nil {
			return err
		}
		res.Current = current
		e.deps.Logger.Debug("inventory queried",
			"statement", rr.Query.Statement(),
			"cutoff", rr.Cutoff.UTC().Format(time.RFC3339),
			"rows", rr.Rows,
		)
		return nil
	}); err != nil {
		return res, fmt.Errorf("engine: resolve stale nodes: %w", err)
	}

	// ---- classify + format (pure) ----
	_ = telemetry.RunStep(ctx, e.deps.Tracer, "classify", func(context.Context) error {
		res.Classification = state.Classify(res.Current, res.Known)
		res.Message = notify.Format(res.Classification, e.cfg.IconURL)
		return nil
	})

	span.SetAttributes(
		attribute.Int("stalewatch.current", res.Classification.CurrentCount),
		attribute.Int("stalewatch.newly_stale", len(res.Classification.NewlyStale)),
		attribute.Int("stalewatch.freshened", len(res.Classification.Freshened)),
	)

	// ---- audit line (always) ----
	e.logSummary(res)

	// ---- notify (iff something changed, best-effort) ----
	if !res.Classification.Changed() {
		e.deps.Logger.Debug("nothing went stale or freshened, notification skipped")
	} else {
		nerr := telemetry.RunStep(ctx, e.deps.Tracer, "notify", func(ctx context.Context) error {
			return e.deps.Notifier.Notify(ctx, res.Message)
		})
		if nerr != nil {
			res.NotifyErr = nerr
			e.deps.Logger.Error("notification failed, snapshot will still be saved", "error", nerr)
		} else {
			res.Notified = true
		}
	}

	// ---- persist (last) ----
	if !e.cfg.Persist {
		e.deps.Logger.Info("snapshot not saved (dry run)")
		return res, nil
	}
	if err := telemetry.RunStep(ctx, e.deps.Tracer, "persist", func(context.Context) error {
		return e.deps.Store.Save(res.Current)
	}); err != nil {
		return res, fmt.Errorf("engine: persist stale set: %w", err)
	}
	res.Persisted = true

	return res, nil
}

// logSummary is the operator audit trail, written whether or not
// anything is delivered.
func (e *Engine) logSummary(res Result) {
	e.deps.Logger.Info("stale nodes",
		"at", e.now().Format(time.RFC3339),
		"count", res.Classification.CurrentCount,
		"newly_stale", len(res.Classification.NewlyStale),
		"freshened", len(res.Classification.Freshened),
		"nodes", res.Current.Sorted(),
	)
}
