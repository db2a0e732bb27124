package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "storeinsight/internal/errors"
)

// naTokens are the cell contents read as missing values.
var naTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"#N/A": true,
	"<NA>": true,
	"None": true,
}

// naCell is how gota spells a missing value when building a series from strings.
const naCell = "NaN"

// LoadOptions selects what LoadWorkbook reads
type LoadOptions struct {
	// Sheet to read; the first sheet when empty.
	Sheet  string
	Logger *slog.Logger
}

// LoadWorkbook reads one worksheet of an xlsx file into a DataFrame.
// The first row is the header. Column types are inferred per column: Int when
// every present cell is an integer, Float when every present cell is numeric,
// String otherwise. No schema validation is performed.
func LoadWorkbook(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, apperrors.NewMissingFileError(path, err)
		}
		return dataframe.DataFrame{}, apperrors.NewStorageError(fmt.Sprintf("failed to stat %s", path), err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, apperrors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", path), nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError(fmt.Sprintf("sheet %q is empty", sheet), nil)
	}

	header := headerNames(rows[0])
	cells := make([][]string, len(header))
	skipped := 0

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			skipped++
			continue
		}
		for j := range header {
			v := ""
			if j < len(row) {
				v = row[j]
			}
			cells[j] = append(cells[j], v)
		}
	}

	columns := make([]series.Series, len(header))
	for j, name := range header {
		columns[j] = buildSeries(name, cells[j])
	}

	df := dataframe.New(columns...)
	if df.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to build table", df.Err)
	}

	logger.Info("Workbook loaded",
		slog.String("file", path),
		slog.String("sheet", sheet),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()),
		slog.Int("blank_rows_skipped", skipped))

	return df, nil
}

// headerNames names empty header cells "Unnamed: i" and suffixes duplicates
// with ".n". Names are kept exactly as written, surrounding spaces included.
func headerNames(row []string) []string {
	names := make([]string, len(row))
	seen := make(map[string]int, len(row))
	for i, name := range row {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			names[i] = fmt.Sprintf("%s.%d", name, n+1)
			continue
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// buildSeries infers the column type and converts missing tokens to NA.
func buildSeries(name string, raw []string) series.Series {
	values := make([]string, len(raw))
	allInt, allFloat, present := true, true, 0

	for i, v := range raw {
		if naTokens[v] {
			values[i] = naCell
			continue
		}
		present++
		values[i] = v
		if allInt {
			if _, err := strconv.Atoi(v); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if f, err := strconv.ParseFloat(v, 64); err != nil || math.IsInf(f, 0) {
				allFloat = false
			}
		}
	}

	switch {
	case present == 0:
		// An all-missing column is numeric, like an empty spreadsheet column.
		return series.New(values, series.Float, name)
	case allInt:
		return series.New(values, series.Int, name)
	case allFloat:
		return series.New(values, series.Float, name)
	default:
		return series.New(values, series.String, name)
	}
}
