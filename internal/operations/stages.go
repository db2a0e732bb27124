package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"storeinsight/internal/config"
	"storeinsight/internal/dataprocessing"
	"storeinsight/internal/exporter"
	"storeinsight/internal/infrastructure"
	"storeinsight/internal/validation"
)

// StageDependencies holds everything the pipeline steps need
type StageDependencies struct {
	Config    *config.Config
	Paths     *config.Paths
	Out       io.Writer
	Logger    *slog.Logger
	Validator *validation.FileValidator
	Charts    dataprocessing.ChartRenderer
	Tables    *exporter.TableWriter
	Metrics   *infrastructure.PipelineMetrics
	Views     []dataprocessing.View
}

// NewStageDependencies fills in writers and validators derived from cfg.
// A nil out discards console output.
func NewStageDependencies(cfg *config.Config, out io.Writer, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) (*StageDependencies, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}

	theme, err := exporter.ThemeFor(cfg.Chart.Theme)
	if err != nil {
		return nil, err
	}

	paths := cfg.Paths()
	return &StageDependencies{
		Config:    cfg,
		Paths:     paths,
		Out:       out,
		Logger:    logger,
		Validator: validation.NewFileValidator(logger),
		Charts:    exporter.NewChartWriter(paths, theme, cfg.Chart.DPI, logger),
		Tables:    exporter.NewTableWriter(paths, logger),
		Metrics:   metrics,
	}, nil
}

// NewPipelineRegistry registers load, clean, features and report in run order
func NewPipelineRegistry(deps *StageDependencies) (*Registry, error) {
	registry := NewRegistry()
	steps := []Step{
		NewLoadStage(deps),
		NewCleanStage(deps),
		NewFeatureStage(deps),
		NewReportStage(deps),
	}
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// requireFrame fetches the table left by the previous step
func requireFrame(state *OperationState, stepID string) (dataframe.DataFrame, error) {
	df, ok := state.Frame()
	if !ok {
		return dataframe.DataFrame{}, NewInvalidStateError(stepID, "no data loaded")
	}
	return df, nil
}

// LoadStage reads the sales workbook into the operation state
type LoadStage struct {
	BaseStage
	deps *StageDependencies
}

// NewLoadStage creates the workbook loading step
func NewLoadStage(deps *StageDependencies) *LoadStage {
	return &LoadStage{BaseStage: NewBaseStage(StageIDLoad, StageNameLoad), deps: deps}
}

// Validate fails with a missing file error before anything is printed
func (s *LoadStage) Validate(state *OperationState) error {
	return s.deps.Validator.ValidateInputFile(s.deps.Paths.InputFile)
}

// Execute loads the workbook
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	path := s.deps.Paths.InputFile
	fmt.Fprintf(s.deps.Out, "Loading data from %s...\n", path)

	df, err := dataprocessing.LoadWorkbook(path, dataprocessing.LoadOptions{
		Sheet:  s.deps.Config.Input.Sheet,
		Logger: s.deps.Logger,
	})
	if err != nil {
		return err
	}

	rows := df.Nrow()
	state.SetFrame(df)
	state.SetContext(ContextKeyInputFile, path)
	state.SetContext(ContextKeyRowsLoaded, rows)
	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("rows", rows)
		st.SetMetadata("columns", df.Ncol())
	}
	infrastructure.RecordRowCounts(ctx, s.deps.Metrics, rows, 0)
	return nil
}

// CleanStage normalises Gender and Qty and drops rows missing critical values
type CleanStage struct {
	BaseStage
	deps *StageDependencies
}

// NewCleanStage creates the cleaning step
func NewCleanStage(deps *StageDependencies) *CleanStage {
	return &CleanStage{BaseStage: NewBaseStage(StageIDClean, StageNameClean), deps: deps}
}

// Execute cleans the loaded table
func (s *CleanStage) Execute(ctx context.Context, state *OperationState) error {
	df, err := requireFrame(state, s.ID())
	if err != nil {
		return err
	}

	cleaned, report, err := dataprocessing.NewCleaner(s.deps.Out, s.deps.Logger).Clean(ctx, df)
	if err != nil {
		return err
	}

	state.SetFrame(cleaned)
	state.SetContext(ContextKeyCleaningReport, report)
	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("rows_dropped", report.RowsDropped)
	}
	infrastructure.RecordRowCounts(ctx, s.deps.Metrics, 0, report.RowsDropped)
	return nil
}

// FeatureStage appends the Age Group and Month columns
type FeatureStage struct {
	BaseStage
	deps *StageDependencies
}

// NewFeatureStage creates the feature engineering step
func NewFeatureStage(deps *StageDependencies) *FeatureStage {
	return &FeatureStage{BaseStage: NewBaseStage(StageIDFeatures, StageNameFeatures), deps: deps}
}

// Execute derives the feature columns
func (s *FeatureStage) Execute(ctx context.Context, state *OperationState) error {
	df, err := requireFrame(state, s.ID())
	if err != nil {
		return err
	}

	featured, err := dataprocessing.NewFeatureDeriver(s.deps.Out, s.deps.Logger).Derive(ctx, df)
	if err != nil {
		return err
	}
	state.SetFrame(featured)
	return nil
}

// ReportStage prints the six summaries and writes their charts
type ReportStage struct {
	BaseStage
	deps *StageDependencies
}

// NewReportStage creates the analysis and visualization step
func NewReportStage(deps *StageDependencies) *ReportStage {
	return &ReportStage{BaseStage: NewBaseStage(StageIDReport, StageNameReport), deps: deps}
}

// Execute aggregates every view, renders the charts and optionally the tables
func (s *ReportStage) Execute(ctx context.Context, state *OperationState) error {
	df, err := requireFrame(state, s.ID())
	if err != nil {
		return err
	}

	out := s.deps.Out
	fmt.Fprintln(out, "\n--- Phase 3: Data Analysis & Visualization ---")

	created, err := s.deps.Validator.EnsureOutputDirectory(s.deps.Paths.OutputDir)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Created '%s' folder.\n", s.deps.Paths.OutputDir)
	}

	reporter := dataprocessing.NewReporter(out, s.deps.Charts, s.deps.Logger, s.deps.Views...)
	results, err := reporter.Run(ctx, df)
	if err != nil {
		return err
	}

	charts := make([]string, 0, len(results))
	var tables []string
	for _, r := range results {
		charts = append(charts, r.ChartPath)
		infrastructure.RecordChartRendered(ctx, s.deps.Metrics, string(r.View.Chart.Kind), r.View.Chart.File)

		if s.deps.Tables == nil || !s.deps.Tables.Enabled() {
			continue
		}
		path, err := s.deps.Tables.WriteAggregate(ctx, exporter.TableFileName(r.View.Chart.File), r.Aggregate)
		if err != nil {
			return err
		}
		tables = append(tables, path)
	}

	state.SetContext(ContextKeyViewResults, results)
	state.SetContext(ContextKeyCharts, charts)
	if len(tables) > 0 {
		state.SetContext(ContextKeyTables, tables)
	}
	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("charts", len(charts))
		st.SetMetadata("tables", len(tables))
	}
	return nil
}
