package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig locates the sales workbook
type InputConfig struct {
	File  string `yaml:"file" envconfig:"FILE" default:"Store_data_analysis.xlsx" validate:"required"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// OutputConfig contains chart output configuration
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"outputs" validate:"required"`
	// TablesDir receives one CSV per aggregate when set.
	TablesDir string `yaml:"tables_dir" envconfig:"TABLES_DIR"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/storeinsight.log"`
}

// ChartConfig contains chart styling configuration
type ChartConfig struct {
	Theme string `yaml:"theme" envconfig:"THEME" default:"whitegrid" validate:"oneof=whitegrid darkgrid white ticks"`
	DPI   int    `yaml:"dpi" envconfig:"DPI" default:"100" validate:"min=36,max=600"`
}

// TelemetryConfig contains tracing and metrics export configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from environment variables and the first config file found
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom loads configuration from environment variables and the given YAML file.
// An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileConfig, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg)
		}
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv exports the variables of a dotenv file that are not already set
// in the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config.
// A variable set in the environment wins; otherwise a non-zero file value
// replaces the envconfig default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	key := func(section, field string) string {
		return EnvPrefix + "_" + section + "_" + field
	}

	envConfig.Input.File = pick(key("INPUT", "FILE"), envConfig.Input.File, fileConfig.Input.File)
	envConfig.Input.Sheet = pick(key("INPUT", "SHEET"), envConfig.Input.Sheet, fileConfig.Input.Sheet)
	envConfig.Output.Dir = pick(key("OUTPUT", "DIR"), envConfig.Output.Dir, fileConfig.Output.Dir)
	envConfig.Output.TablesDir = pick(key("OUTPUT", "TABLES_DIR"), envConfig.Output.TablesDir, fileConfig.Output.TablesDir)

	envConfig.Logging.Level = pick(key("LOGGING", "LEVEL"), envConfig.Logging.Level, fileConfig.Logging.Level)
	envConfig.Logging.Format = pick(key("LOGGING", "FORMAT"), envConfig.Logging.Format, fileConfig.Logging.Format)
	envConfig.Logging.Output = pick(key("LOGGING", "OUTPUT"), envConfig.Logging.Output, fileConfig.Logging.Output)
	envConfig.Logging.FilePath = pick(key("LOGGING", "FILE_PATH"), envConfig.Logging.FilePath, fileConfig.Logging.FilePath)

	envConfig.Chart.Theme = pick(key("CHART", "THEME"), envConfig.Chart.Theme, fileConfig.Chart.Theme)
	envConfig.Chart.DPI = pick(key("CHART", "DPI"), envConfig.Chart.DPI, fileConfig.Chart.DPI)

	envConfig.Telemetry.TraceExporter = pick(key("TELEMETRY", "TRACE_EXPORTER"), envConfig.Telemetry.TraceExporter, fileConfig.Telemetry.TraceExporter)
	envConfig.Telemetry.MetricsFile = pick(key("TELEMETRY", "METRICS_FILE"), envConfig.Telemetry.MetricsFile, fileConfig.Telemetry.MetricsFile)

	return envConfig
}

func pick[T comparable](envKey string, envValue, fileValue T) T {
	if _, ok := os.LookupEnv(envKey); ok {
		return envValue
	}
	var zero T
	if fileValue != zero {
		return fileValue
	}
	return envValue
}

// validate validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Chart.Theme = strings.ToLower(c.Chart.Theme)

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	for _, location := range configFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			File: DefaultInputFile,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Chart: ChartConfig{
			Theme: DefaultTheme,
			DPI:   DefaultDPI,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
