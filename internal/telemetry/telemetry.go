// internal/telemetry/telemetry.go
package telemetry

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// NewProvider returns a tracer provider that writes one log record
// per finished span. There is no exporter: spans live for one run.
func NewProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(&logProcessor{logger: logger}),
	)
}

// RunStep runs fn inside a child span named id.
// A returned error is recorded on the span and passed through unchanged.
func RunStep(ctx context.Context, tracer trace.Tracer, id string, fn func(context.Context) error) error {
	if tracer == nil {
		return fn(ctx)
	}

	stepCtx, span := tracer.Start(ctx, id)
	defer span.End()

	if err := fn(stepCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

// ---- span processor ----

type logProcessor struct {
	logger *slog.Logger
}

func (p *logProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	attrs := []any{
		"step", s.Name(),
		"duration", s.EndTime().Sub(s.StartTime()),
	}

	if st := s.Status(); st.Code == codes.Error {
		p.logger.Debug("step failed", append(attrs, "error", st.Description)...)
		return
	}
	p.logger.Debug("step done", attrs...)
}

func (p *logProcessor) Shutdown(context.Context) error   { return nil }
func (p *logProcessor) ForceFlush(context.Context) error { return nil }
