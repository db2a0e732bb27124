package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeinsight/internal/shared/testutil"
)

func TestConfigPaths(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = "./outputs/"

	paths := cfg.Paths()

	assert.Equal(t, "Store_data_analysis.xlsx", paths.InputFile)
	assert.Equal(t, "outputs", paths.OutputDir)
	assert.Equal(t, filepath.Join("outputs", "monthly_trend.png"), paths.ChartPath("monthly_trend.png"))
	assert.Equal(t, filepath.Join("logs", "storeinsight.log"), paths.LogFile)
	assert.Empty(t, paths.TablesDir)
	assert.Empty(t, paths.TablePath("monthly_trend.csv"))
}

func TestConfigPaths_Tables(t *testing.T) {
	cfg := Default()
	cfg.Output.TablesDir = "reports/tables/"

	paths := cfg.Paths()

	assert.Equal(t, filepath.Join("reports", "tables"), paths.TablesDir)
	assert.Equal(t, filepath.Join("reports", "tables", "monthly_trend.csv"), paths.TablePath("monthly_trend.csv"))
}

func TestEnsureLogDirectory(t *testing.T) {
	dir := t.TempDir()
	paths := &Paths{LogFile: filepath.Join(dir, "nested", "logs", "run.log")}

	require.NoError(t, paths.EnsureLogDirectory())

	info, err := os.Stat(filepath.Join(dir, "nested", "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// bare file names need no directory
	assert.NoError(t, (&Paths{LogFile: "run.log"}).EnsureLogDirectory())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "absent.xlsx")))
}

func TestLogPathResolution(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	(&Paths{InputFile: "in.xlsx", OutputDir: "out", LogFile: "x.log"}).LogPathResolution(logger)

	testutil.AssertLogContains(t, handler, slog.LevelDebug, "Path resolution")
	testutil.AssertLogAttr(t, handler, "input_file", "in.xlsx")
	testutil.AssertLogAttr(t, handler, "input_exists", false)
}
