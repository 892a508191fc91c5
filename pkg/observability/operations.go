package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Alijeyrad/uat_backend"

// Outcomes recorded on operation counters.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Operations traces named service operations and counts their outcomes.
// It reads the global providers, so it is a no-op until InitTelemetry runs.
type Operations struct {
	tracer  trace.Tracer
	counter metric.Int64Counter
}

func NewOperations(counterName, description string) *Operations {
	meter := otel.Meter(instrumentationName)
	counter, err := meter.Int64Counter(counterName,
		metric.WithDescription(description),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &Operations{
		tracer:  otel.Tracer(instrumentationName),
		counter: counter,
	}
}

// Op is one running operation.
type Op struct {
	ctx     context.Context
	name    string
	span    trace.Span
	counter metric.Int64Counter
}

// Start opens a span named name. Callers must call End.
func (o *Operations) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Op) {
	ctx, span := o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Op{ctx: ctx, name: name, span: span, counter: o.counter}
}

// End records outcome and closes the span. A non-nil err marks the span failed.
func (op *Op) End(outcome string, err error) {
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	} else {
		op.span.SetStatus(codes.Ok, "")
	}
	op.span.SetAttributes(attribute.String("outcome", outcome))

	if op.counter != nil {
		op.counter.Add(op.ctx, 1, metric.WithAttributes(
			attribute.String("operation", op.name),
			attribute.String("outcome", outcome),
		))
	}
	op.span.End()
}

// SetAttributes annotates the running span.
func (op *Op) SetAttributes(attrs ...attribute.KeyValue) {
	op.span.SetAttributes(attrs...)
}
