package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name registered with OTel.
const tracerName = "templateinstance-migrator"

// Tracer is the package-level OTel tracer for the migrator.
// It returns a noop tracer when no TracerProvider is registered,
// making instrumentation zero-cost in the default configuration.
var Tracer = otel.Tracer(tracerName)

// StartRunSpan starts a new span covering a whole migration run. The span is
// annotated with the namespace scope (empty for cluster-wide) and the dry-run
// flag. Callers must call span.End() when the run completes.
func StartRunSpan(ctx context.Context, namespace string, dryRun bool) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "MigrateTemplateInstances",
		trace.WithAttributes(
			attribute.String("k8s.namespace", namespace),
			attribute.Bool("migrate.dry_run", dryRun),
		),
	)
}

// RecordSpanError records an error on a span and sets the span status to Error.
// If err is nil, this is a no-op.
func RecordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
