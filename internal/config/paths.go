package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the file system locations a run touches.
// This is the single source of truth for input, output and log paths.
type Paths struct {
	InputFile string
	OutputDir string
	TablesDir string
	LogFile   string
}

// Paths resolves the configured locations. Relative paths stay relative to
// the working directory.
func (c *Config) Paths() *Paths {
	return &Paths{
		InputFile: filepath.Clean(c.Input.File),
		OutputDir: filepath.Clean(c.Output.Dir),
		TablesDir: cleanOptional(c.Output.TablesDir),
		LogFile:   filepath.Clean(c.Logging.FilePath),
	}
}

// ChartPath returns the location of a chart file inside the output directory.
func (p *Paths) ChartPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// TablePath returns the location of an aggregate table, or "" when table
// export is disabled.
func (p *Paths) TablePath(filename string) string {
	if p.TablesDir == "" {
		return ""
	}
	return filepath.Join(p.TablesDir, filename)
}

func cleanOptional(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

// EnsureLogDirectory creates the directory holding the log file.
func (p *Paths) EnsureLogDirectory() error {
	dir := filepath.Dir(p.LogFile)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution",
		slog.String("input_file", p.InputFile),
		slog.Bool("input_exists", FileExists(p.InputFile)),
		slog.String("output_dir", p.OutputDir),
		slog.String("tables_dir", p.TablesDir),
		slog.String("log_file", p.LogFile))
}
