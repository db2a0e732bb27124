package config

// Application constants
const (
	// Application Info
	AppName = "storeinsight"

	// Environment variable prefix, e.g. STORE_INPUT_FILE
	EnvPrefix = "STORE"
	// DotEnvFile is read before the environment when present
	DotEnvFile = ".env"

	// Default locations, relative to the working directory
	DefaultInputFile = "Store_data_analysis.xlsx"
	DefaultOutputDir = "outputs"
	DefaultLogFile   = "logs/storeinsight.log"

	// Chart rendering
	DefaultTheme = "whitegrid"
	DefaultDPI   = 100
)

// configFileLocations are searched in order; the first existing file wins.
var configFileLocations = []string{
	"storeinsight.yaml",
	"configs/storeinsight.yaml",
}
