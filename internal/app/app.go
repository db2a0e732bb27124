package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"storeinsight/internal/config"
	apperrors "storeinsight/internal/errors"
	"storeinsight/internal/infrastructure"
	"storeinsight/internal/operations"
	"storeinsight/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

// Application wires configuration, logging, telemetry and the pipeline
// for a single run
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Manager       *operations.Manager
	SystemMetrics *infrastructure.SystemMetrics

	logFile   *os.File
	startTime time.Time
}

// NewApplication loads configuration and builds every component of a run.
// The pipeline report goes to stdout; logs and trace export go to stderr.
func NewApplication(stdout, stderr io.Writer) (*Application, error) {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}
	paths := cfg.Paths()

	if cfg.Logging.Output != "console" {
		if err := paths.EnsureLogDirectory(); err != nil {
			return nil, err
		}
	}
	logger, logFile, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetFullVersionString()))
	paths.LogPathResolution(logger)

	a := &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		logFile:   logFile,
		startTime: startTime,
	}

	if err := a.initializeServices(stdout, stderr); err != nil {
		a.closeLogFile()
		return nil, err
	}
	return a, nil
}

// initializeServices sets up telemetry and registers the pipeline steps
func (a *Application) initializeServices(stdout, stderr io.Writer) error {
	otelCfg := infrastructure.OTelConfigFrom(a.Config.Telemetry)
	otelCfg.TraceWriter = stderr
	providers, err := infrastructure.InitializeOTel(otelCfg, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	a.OTelProviders = providers

	tracer, err := operations.NewOperationTracer(providers)
	if err != nil {
		return err
	}

	if providers.Meter != nil {
		systemMetrics, err := infrastructure.NewSystemMetrics(providers.Meter)
		if err != nil {
			return fmt.Errorf("failed to create system metrics: %w", err)
		}
		a.SystemMetrics = systemMetrics
	}

	pipelineLogger := infrastructure.WithComponent(a.Logger, "pipeline")
	deps, err := operations.NewStageDependencies(a.Config, stdout, pipelineLogger, tracer.Metrics())
	if err != nil {
		return err
	}
	registry, err := operations.NewPipelineRegistry(deps)
	if err != nil {
		return fmt.Errorf("failed to register pipeline steps: %w", err)
	}

	a.Manager = operations.NewManager(registry, tracer, pipelineLogger)
	return nil
}

// Run executes the pipeline once under a fresh run ID
func (a *Application) Run(ctx context.Context) (*operations.OperationResponse, error) {
	runID := infrastructure.GenerateRunID()
	ctx = infrastructure.WithRunID(ctx, runID)

	a.Logger.InfoContext(ctx, "Starting store sales analysis",
		slog.String("input_file", a.Paths.InputFile),
		slog.String("output_dir", a.Paths.OutputDir),
		slog.String("theme", a.Config.Chart.Theme))

	resp, err := a.Manager.Execute(ctx, runID)

	if a.SystemMetrics != nil {
		stats := a.SystemMetrics.Collect(ctx, a.startTime)
		a.Logger.DebugContext(ctx, "Runtime statistics",
			slog.Int64("memory_bytes", stats.MemoryUsage),
			slog.Int64("goroutines", stats.GoRoutines),
			slog.Duration("uptime", stats.ProcessUptime))
	}
	a.writeMetrics(ctx)

	if err != nil {
		return resp, err
	}
	a.Logger.InfoContext(ctx, "Analysis complete",
		slog.Duration("duration", resp.Duration),
		slog.String("status", string(resp.Status)))
	return resp, nil
}

// writeMetrics dumps the run's metrics when a metrics file is configured
func (a *Application) writeMetrics(ctx context.Context) {
	path := a.Config.Telemetry.MetricsFile
	if path == "" || a.OTelProviders == nil {
		return
	}
	if err := a.OTelProviders.WriteMetricsFile(path); err != nil {
		a.Logger.WarnContext(ctx, "Failed to write metrics file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	a.Logger.DebugContext(ctx, "Metrics written", slog.String("path", path))
}

// Stop flushes telemetry and closes the log file
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var err error
	if a.OTelProviders != nil {
		if err = a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}
	a.closeLogFile()
	return err
}

func (a *Application) closeLogFile() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}
