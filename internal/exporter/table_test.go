package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeinsight/internal/config"
	apperrors "storeinsight/internal/errors"
	"storeinsight/pkg/contracts/domain"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

func TestTableWriter_WriteCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewTableWriter(&config.Paths{TablesDir: dir}, nil)

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		validate func(t *testing.T, filePath string)
	}{
		{
			name:     "basic write with headers",
			filePath: "basic.csv",
			options: WriteOptions{
				Headers: []string{"Channel", "Amount (sum)"},
				Records: [][]string{{"Amazon", "753.33"}, {"Myntra", "705.01"}},
			},
			validate: func(t *testing.T, filePath string) {
				assert.Equal(t, []string{"Channel,Amount (sum)", "Amazon,753.33", "Myntra,705.01"}, readLines(t, filePath))
			},
		},
		{
			name:     "write with BOM prefix",
			filePath: "bom.csv",
			options: WriteOptions{
				Headers:   []string{"Status"},
				Records:   [][]string{{"Delivered"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)
				assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))
			},
		},
		{
			name:     "quotes fields with commas",
			filePath: "quoted.csv",
			options: WriteOptions{
				Records: [][]string{{"Shipped - Delivered to Buyer, late", "1"}},
			},
			validate: func(t *testing.T, filePath string) {
				assert.Equal(t, []string{`"Shipped - Delivered to Buyer, late",1`}, readLines(t, filePath))
			},
		},
		{
			name:     "empty records",
			filePath: "empty.csv",
			options:  WriteOptions{Headers: []string{"Col1", "Col2"}},
			validate: func(t *testing.T, filePath string) {
				assert.Equal(t, []string{"Col1,Col2"}, readLines(t, filePath))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, writer.WriteCSV(tt.filePath, tt.options))
			tt.validate(t, filepath.Join(dir, tt.filePath))
		})
	}
}

func TestTableWriter_Truncates(t *testing.T) {
	dir := t.TempDir()
	writer := NewTableWriter(&config.Paths{TablesDir: dir}, nil)

	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}, {"2"}}}))
	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{Headers: []string{"a"}, Records: [][]string{{"3"}}}))

	assert.Equal(t, []string{"a", "3"}, readLines(t, filepath.Join(dir, "log.csv")))
}

func TestTableWriter_WriteAggregate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	writer := NewTableWriter(&config.Paths{TablesDir: dir}, nil)
	require.True(t, writer.Enabled())

	agg := chartSpecs()[0].Data
	path, err := writer.WriteAggregate(context.Background(), TableFileName("monthly_trend.png"), agg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "monthly_trend.csv"), path)
	assert.Equal(t, []string{
		"Month,Amount (sum),Order ID (count)",
		"Jan,30.00,2",
		"Mar,5.00,1",
	}, readLines(t, path))

	// second write replaces the first
	_, err = writer.WriteAggregate(context.Background(), "monthly_trend.csv", &domain.Aggregate{
		GroupBy:  agg.GroupBy,
		Measures: agg.Measures,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Month,Amount (sum),Order ID (count)"}, readLines(t, path))
}

func TestTableWriter_Disabled(t *testing.T) {
	writer := NewTableWriter(&config.Paths{OutputDir: t.TempDir()}, nil)
	assert.False(t, writer.Enabled())

	path, err := writer.WriteAggregate(context.Background(), "x.csv", chartSpecs()[1].Data)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestTableWriter_StorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "tables")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	writer := NewTableWriter(&config.Paths{TablesDir: blocker}, nil)

	_, err := writer.WriteAggregate(context.Background(), "x.csv", chartSpecs()[1].Data)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestTableFileName(t *testing.T) {
	assert.Equal(t, "monthly_trend.csv", TableFileName("monthly_trend.png"))
	assert.Equal(t, "top_5_states.csv", TableFileName("top_5_states"))
}
