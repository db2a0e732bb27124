package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"storeinsight/internal/config"
	apperrors "storeinsight/internal/errors"
	"storeinsight/pkg/contracts/domain"
)

// TableWriter exports aggregates as CSV next to the charts
type TableWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewTableWriter creates a new table writer instance
func NewTableWriter(paths *config.Paths, logger *slog.Logger) *TableWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableWriter{paths: paths, logger: logger}
}

// Enabled reports whether a tables directory is configured
func (w *TableWriter) Enabled() bool {
	return w.paths != nil && w.paths.TablesDir != ""
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options. Relative paths
// resolve inside the tables directory.
func (w *TableWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAggregate writes agg to the tables directory as CSV: the group keys
// followed by one column per measure. It returns the written path, or "" when
// table export is disabled.
func (w *TableWriter) WriteAggregate(ctx context.Context, filename string, agg *domain.Aggregate) (string, error) {
	if !w.Enabled() {
		return "", nil
	}

	headers := append([]string(nil), agg.GroupBy...)
	for _, m := range agg.Measures {
		headers = append(headers, fmt.Sprintf("%s (%s)", m.Label(), m.Func))
	}

	records := make([][]string, 0, agg.Len())
	for _, row := range agg.Rows {
		record := append([]string(nil), row.Keys...)
		for i, m := range agg.Measures {
			record = append(record, m.Format(row.Values[i]))
		}
		records = append(records, record)
	}

	path := w.resolvePath(filename)
	if err := w.WriteCSV(path, WriteOptions{Headers: headers, Records: records, BOMPrefix: true}); err != nil {
		return "", apperrors.NewStorageError("failed to write table", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "Table written",
		slog.String("path", path),
		slog.Int("rows", len(records)))
	return path, nil
}

// TableFileName maps a chart file name to its table file name,
// e.g. monthly_trend.png to monthly_trend.csv.
func TableFileName(chartFile string) string {
	return strings.TrimSuffix(chartFile, filepath.Ext(chartFile)) + ".csv"
}

// resolvePath resolves a path to the tables directory
func (w *TableWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil || w.paths.TablesDir == "" {
		return filePath
	}
	if strings.HasPrefix(filepath.Clean(filePath), w.paths.TablesDir+string(filepath.Separator)) {
		return filePath
	}
	return w.paths.TablePath(filePath)
}
