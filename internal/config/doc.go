// Package config provides configuration management for storeinsight.
// It loads settings from the environment and an optional YAML file, validates
// them, and resolves the file system paths a run reads and writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (storeinsight.yaml or configs/storeinsight.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern STORE_<SECTION>_<FIELD>:
//
//	STORE_INPUT_FILE=Store_data_analysis.xlsx
//	STORE_OUTPUT_DIR=outputs
//	STORE_LOGGING_LEVEL=debug
//	STORE_CHART_THEME=darkgrid
//	STORE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	paths := cfg.Paths()
//	chart := paths.ChartPath("monthly_trend.png")
//
// Business rules such as age thresholds, gender aliases and chart file names
// are not configurable; they live in pkg/contracts/domain.
package config
