package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storeinsight/internal/infrastructure"
)

// OperationResponse summarises a finished run
type OperationResponse struct {
	ID       string                `json:"id"`
	Status   OperationStatusValue  `json:"status"`
	Duration time.Duration         `json:"duration"`
	Steps    map[string]*StepState `json:"steps"`
	Error    string                `json:"error,omitempty"`
}

// Manager runs the registered steps in order, one at a time. The first
// failing step stops the run and every later step is marked skipped.
type Manager struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new operation manager
func NewManager(registry *Registry, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if tracer == nil {
		tracer, _ = NewOperationTracer(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{registry: registry, tracer: tracer, logger: logger}
}

// Execute runs every registered step under a new operation state. An empty
// id is replaced by a generated run ID.
func (m *Manager) Execute(ctx context.Context, id string) (*OperationResponse, error) {
	if id == "" {
		id = infrastructure.GenerateRunID()
	}
	state := NewOperationState(id)
	err := m.Run(ctx, state)
	return m.createResponse(state), err
}

// Run executes the registered steps against state
func (m *Manager) Run(ctx context.Context, state *OperationState) error {
	steps := m.registry.List()
	if len(steps) == 0 {
		state.Fail(ErrOperationNotFound)
		return ErrOperationNotFound
	}

	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx = infrastructure.WithRunID(ctx, state.ID)
	ctx, span := m.tracer.TraceOperationExecution(ctx, state.ID, len(steps))
	defer span.End()

	state.Start()
	m.logger.InfoContext(ctx, "Pipeline started",
		slog.String("operation_id", state.ID),
		slog.Any("steps", m.registry.ListIDs()))

	err := m.executeSequential(ctx, state, steps)
	if err != nil {
		state.Fail(err)
	} else {
		state.Complete()
	}
	m.tracer.RecordOperationCompletion(ctx, span, state.ID, state.Duration(), err)

	if err != nil {
		infrastructure.WithError(m.logger, err).ErrorContext(ctx, "Pipeline failed",
			slog.String("operation_id", state.ID),
			slog.Duration("duration", state.Duration()))
		return err
	}
	m.logger.InfoContext(ctx, "Pipeline completed",
		slog.String("operation_id", state.ID),
		slog.Duration("duration", state.Duration()))
	return nil
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		m.logger.DebugContext(ctx, "Executing step",
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		if err := m.executeStage(ctx, state, step); err != nil {
			m.skipRemaining(state, steps[i+1:], step.ID())
			return err
		}
	}
	return nil
}

// executeStage validates and runs a single step inside its own span
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewInvalidStateError(step.ID(), "Step state not found")
	}

	ctx, span := m.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	defer span.End()

	stepState.Start()
	startTime := time.Now()

	if err := step.Validate(state); err != nil {
		opErr := &OperationError{
			Type:    ErrorTypeValidation,
			Step:    step.ID(),
			Message: "Step validation failed",
			Cause:   err,
		}
		stepState.Fail(opErr)
		m.tracer.RecordStageCompletion(ctx, span, step.ID(), time.Since(startTime), opErr)
		return opErr
	}

	err := step.Execute(ctx, state)
	duration := time.Since(startTime)
	m.tracer.RecordStageCompletion(ctx, span, step.ID(), duration, err)

	if err != nil {
		wrapped := WrapError(err, step.ID(), "Step execution failed")
		stepState.Fail(wrapped)
		m.logger.DebugContext(ctx, "Step failed",
			slog.String("step", step.ID()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return wrapped
	}

	stepState.Complete()
	m.logger.InfoContext(ctx, "Step completed",
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
	return nil
}

// skipRemaining marks steps that never ran as skipped
func (m *Manager) skipRemaining(state *OperationState, steps []Step, failedID string) {
	for _, step := range steps {
		if s := state.GetStage(step.ID()); s != nil && s.GetStatus() == StepStatusPending {
			s.Skip(fmt.Sprintf("Previous step %s failed", failedID))
		}
	}
}

// createResponse creates an operation response from state
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	resp := &OperationResponse{
		ID:       state.ID,
		Status:   state.Status,
		Duration: state.Duration(),
		Steps:    state.Steps,
	}
	if state.Error != nil {
		resp.Error = state.Error.Error()
	}
	return resp
}
