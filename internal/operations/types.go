package operations

// Step identifiers
const (
	StageIDLoad     = "load"
	StageIDClean    = "clean"
	StageIDFeatures = "features"
	StageIDReport   = "report"
)

// Step names
const (
	StageNameLoad     = "Data Loading"
	StageNameClean    = "Data Cleaning"
	StageNameFeatures = "Feature Engineering"
	StageNameReport   = "Data Analysis & Visualization"
)

// Context keys for values steps leave in the operation state
const (
	ContextKeyInputFile      = "input_file"
	ContextKeyRowsLoaded     = "rows_loaded"
	ContextKeyCleaningReport = "cleaning_report"
	ContextKeyViewResults    = "view_results"
	ContextKeyCharts         = "charts"
	ContextKeyTables         = "tables"
)
