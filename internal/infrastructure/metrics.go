package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// PipelineMetrics holds the metrics recorded by a pipeline run
type PipelineMetrics struct {
	RunsTotal      metric.Int64Counter
	RunDuration    metric.Float64Histogram
	StepsTotal     metric.Int64Counter
	StepDuration   metric.Float64Histogram
	StepErrors     metric.Int64Counter
	RowsLoaded     metric.Int64Counter
	RowsDropped    metric.Int64Counter
	ChartsRendered metric.Int64Counter
}

// CreatePipelineMetrics creates the pipeline instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	runsTotal, err := meter.Int64Counter(
		"pipeline_runs_total",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"pipeline_run_duration_seconds",
		metric.WithDescription("Pipeline run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stepsTotal, err := meter.Int64Counter(
		"pipeline_steps_total",
		metric.WithDescription("Total number of pipeline steps executed"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"pipeline_step_duration_seconds",
		metric.WithDescription("Pipeline step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stepErrors, err := meter.Int64Counter(
		"pipeline_step_errors_total",
		metric.WithDescription("Total number of failed pipeline steps"),
	)
	if err != nil {
		return nil, err
	}

	rowsLoaded, err := meter.Int64Counter(
		"pipeline_rows_loaded_total",
		metric.WithDescription("Rows read from the input workbook"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"pipeline_rows_dropped_total",
		metric.WithDescription("Rows removed for missing critical values"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"pipeline_charts_rendered_total",
		metric.WithDescription("Chart images written"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RunsTotal:      runsTotal,
		RunDuration:    runDuration,
		StepsTotal:     stepsTotal,
		StepDuration:   stepDuration,
		StepErrors:     stepErrors,
		RowsLoaded:     rowsLoaded,
		RowsDropped:    rowsDropped,
		ChartsRendered: chartsRendered,
	}, nil
}

func statusAttr(success bool) attribute.KeyValue {
	if success {
		return attribute.String("status", "success")
	}
	return attribute.String("status", "failure")
}

// RecordRunMetrics records a completed pipeline run
func RecordRunMetrics(ctx context.Context, metrics *PipelineMetrics, duration time.Duration, success bool) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(statusAttr(success))
	metrics.RunsTotal.Add(ctx, 1, attrs)
	metrics.RunDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordStepMetrics records metrics for one step execution
func RecordStepMetrics(ctx context.Context, metrics *PipelineMetrics, stepID string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("step_id", stepID),
		statusAttr(err == nil),
	}

	metrics.StepsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.StepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		metrics.StepErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("step_id", stepID),
			attribute.String("error_type", fmt.Sprintf("%T", err)),
		))
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("step.metrics_recorded",
			trace.WithAttributes(
				attribute.String("step.id", stepID),
				attribute.Bool("success", err == nil),
				attribute.Float64("duration_seconds", duration.Seconds()),
			),
		)
	}
}

// RecordRowCounts records rows loaded and rows dropped by cleaning
func RecordRowCounts(ctx context.Context, metrics *PipelineMetrics, loaded, dropped int) {
	if metrics == nil {
		return
	}
	if loaded > 0 {
		metrics.RowsLoaded.Add(ctx, int64(loaded))
	}
	if dropped > 0 {
		metrics.RowsDropped.Add(ctx, int64(dropped))
	}
}

// RecordChartRendered records one written chart
func RecordChartRendered(ctx context.Context, metrics *PipelineMetrics, kind, file string) {
	if metrics == nil {
		return
	}
	metrics.ChartsRendered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("chart_kind", kind),
		attribute.String("chart_file", file),
	))
}
