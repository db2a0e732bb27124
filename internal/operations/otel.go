package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storeinsight/internal/infrastructure"
)

const (
	TracerName = "storeinsight.operation"
)

// OperationTracer provides OpenTelemetry instrumentation for pipeline runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer recording into the given providers.
// Nil providers yield spans from the global tracer and no metrics.
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	if providers == nil {
		return &OperationTracer{tracer: otel.Tracer(TracerName)}, nil
	}

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	tracer := providers.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &OperationTracer{tracer: tracer, metrics: metrics}, nil
}

// Metrics returns the pipeline instruments, nil when metrics are disabled
func (pt *OperationTracer) Metrics() *infrastructure.PipelineMetrics {
	return pt.metrics
}

// TraceOperationExecution creates a span for the entire run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, stepCount int) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.Int("operation.step_count", stepCount),
		),
	)
}

// TraceStageExecution creates a span for one step
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.step."+stepID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordOperationCompletion records run completion with metrics and span status
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, operationID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
		infrastructure.RecordError(ctx, err,
			trace.WithAttributes(
				attribute.String("operation_id", operationID),
				attribute.String("error.type", "operation_execution_error"),
			),
		)
	}

	span.SetAttributes(
		attribute.String("operation.status", status),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
	)
	infrastructure.RecordRunMetrics(ctx, pt.metrics, duration, err == nil)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "operation completed successfully")
	}
}

// RecordStageCompletion records step completion with metrics, span events and status
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
		infrastructure.RecordError(ctx, err,
			trace.WithAttributes(
				attribute.String("step.id", stepID),
				attribute.String("error.type", "stage_execution_error"),
			),
		)
	}

	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)
	infrastructure.RecordStepMetrics(ctx, pt.metrics, stepID, duration, err)

	infrastructure.AddSpanEvent(ctx, "step.completed", map[string]interface{}{
		"step_id":  stepID,
		"status":   status,
		"duration": duration.Seconds(),
	})

	if err != nil {
		span.SetStatus(codes.Error, "step execution failed")
	} else {
		span.SetStatus(codes.Ok, "step completed successfully")
	}
}
