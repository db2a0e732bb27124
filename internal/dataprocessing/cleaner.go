package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"storeinsight/pkg/contracts/domain"
)

// CleaningReport counts what the cleaner changed
type CleaningReport struct {
	RowsIn           int
	RowsOut          int
	RowsDropped      int
	GenderRemapped   int
	QtyWordsReplaced int
	QtyDefaulted     int
}

// Cleaner normalises Gender and Qty and drops rows missing critical values.
// Progress lines are written to out.
type Cleaner struct {
	out    io.Writer
	logger *slog.Logger
}

// NewCleaner creates a cleaner writing progress to out
func NewCleaner(out io.Writer, logger *slog.Logger) *Cleaner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{out: out, logger: logger}
}

// Clean applies gender normalisation, quantity correction and null filtering, in that order.
func (c *Cleaner) Clean(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, CleaningReport, error) {
	report := CleaningReport{RowsIn: df.Nrow()}

	fmt.Fprintln(c.out, "--- Phase 1: Data Cleaning ---")

	df, remapped, err := NormalizeGender(df)
	if err != nil {
		return dataframe.DataFrame{}, report, err
	}
	report.GenderRemapped = remapped
	fmt.Fprintln(c.out, "Standardized Gender column.")

	df, words, defaulted, err := CorrectQty(df)
	if err != nil {
		return dataframe.DataFrame{}, report, err
	}
	report.QtyWordsReplaced = words
	report.QtyDefaulted = defaulted
	fmt.Fprintln(c.out, "Corrected Qty column.")

	df, dropped, err := DropMissing(df, domain.CriticalColumns)
	if err != nil {
		return dataframe.DataFrame{}, report, err
	}
	report.RowsDropped = dropped
	report.RowsOut = df.Nrow()
	fmt.Fprintf(c.out, "Dropped rows with null values in %v.\n", domain.CriticalColumns)

	c.logger.InfoContext(ctx, "Data cleaned",
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("rows_dropped", report.RowsDropped),
		slog.Int("gender_remapped", report.GenderRemapped),
		slog.Int("qty_words_replaced", report.QtyWordsReplaced),
		slog.Int("qty_defaulted", report.QtyDefaulted))

	return df, report, nil
}

// NormalizeGender maps the aliases in domain.GenderAliases to their normalised
// value. Other values, including missing ones, are left as they are.
func NormalizeGender(df dataframe.DataFrame) (dataframe.DataFrame, int, error) {
	s, err := column(df, domain.ColumnGender)
	if err != nil {
		return dataframe.DataFrame{}, 0, err
	}
	// Numeric columns hold no aliases.
	if s.Type() != series.String {
		return df, 0, nil
	}

	values := make([]string, s.Len())
	remapped := 0
	for i := range values {
		e := s.Elem(i)
		if e.IsNA() {
			values[i] = naCell
			continue
		}
		v := e.String()
		if to, ok := domain.GenderAliases[v]; ok {
			v = to
			remapped++
		}
		values[i] = v
	}

	out, err := replaceColumn(df, series.New(values, series.String, domain.ColumnGender))
	return out, remapped, err
}

// CorrectQty replaces spelled-out quantities with numbers and coerces the
// column to integers. Missing or non-numeric values become domain.DefaultQty;
// fractional values are truncated toward zero. A literal 0 stays 0.
func CorrectQty(df dataframe.DataFrame) (dataframe.DataFrame, int, int, error) {
	s, err := column(df, domain.ColumnQty)
	if err != nil {
		return dataframe.DataFrame{}, 0, 0, err
	}

	values := make([]int, s.Len())
	words, defaulted := 0, 0
	for i := range values {
		e := s.Elem(i)
		if e.IsNA() {
			values[i] = int(domain.DefaultQty)
			defaulted++
			continue
		}

		switch s.Type() {
		case series.Int:
			n, _ := e.Int()
			values[i] = n
			continue
		case series.Float:
			if q, ok := truncate(e.Float()); ok {
				values[i] = q
			} else {
				values[i] = int(domain.DefaultQty)
				defaulted++
			}
			continue
		}

		raw := e.String()
		if n, ok := domain.QtyWords[raw]; ok {
			values[i] = int(n)
			words++
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if q, ok := truncate(f); err == nil && ok {
			values[i] = q
			continue
		}
		values[i] = int(domain.DefaultQty)
		defaulted++
	}

	out, err := replaceColumn(df, series.New(values, series.Int, domain.ColumnQty))
	return out, words, defaulted, err
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// DropMissing removes every row with a missing value in any of cols and
// returns how many rows were removed.
func DropMissing(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, int, error) {
	checked := make([]series.Series, len(cols))
	for i, name := range cols {
		s, err := column(df, name)
		if err != nil {
			return dataframe.DataFrame{}, 0, err
		}
		checked[i] = s
	}

	keep := make([]int, 0, df.Nrow())
	for row := 0; row < df.Nrow(); row++ {
		missing := false
		for _, s := range checked {
			if s.Elem(row).IsNA() {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, row)
		}
	}

	dropped := df.Nrow() - len(keep)
	if dropped == 0 {
		return df, 0, nil
	}
	return subset(df, keep), dropped, nil
}

// subset returns the rows at indexes, preserving column names and types.
func subset(df dataframe.DataFrame, indexes []int) dataframe.DataFrame {
	if len(indexes) > 0 {
		return df.Subset(indexes)
	}
	// gota rejects empty selections, so build empty columns directly.
	columns := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		columns = append(columns, series.New([]string{}, df.Col(name).Type(), name))
	}
	return dataframe.New(columns...)
}
