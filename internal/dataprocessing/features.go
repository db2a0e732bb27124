package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "storeinsight/internal/errors"
	"storeinsight/pkg/contracts/domain"
)

// dateLayouts are tried in order for text Date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// AgeGroup buckets an age: 50 and over is Senior, 30 to 49 Adult, anything
// else Teenager. NaN falls through to Teenager.
func AgeGroup(age float64) string {
	switch {
	case age >= domain.SeniorMinAge:
		return domain.AgeGroupSenior
	case age >= domain.AdultMinAge:
		return domain.AgeGroupAdult
	default:
		return domain.AgeGroupTeenager
	}
}

// ParseDate reads a Date cell. Numeric cells are Excel serial dates; text is
// matched against a fixed list of layouts, then tried as a serial number.
func ParseDate(raw string, numeric bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if numeric {
		return serialDate(raw)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	if t, err := serialDate(raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("no known date layout matches %q", raw)
}

func serialDate(raw string) (time.Time, error) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, err
	}
	return excelize.ExcelDateToTime(serial, false)
}

// MonthAbbrev formats t as a three-letter English month, e.g. "Jan".
func MonthAbbrev(t time.Time) string {
	return t.Month().String()[:3]
}

// FeatureDeriver appends the Age Group and Month columns
type FeatureDeriver struct {
	out    io.Writer
	logger *slog.Logger
}

// NewFeatureDeriver creates a deriver writing progress to out
func NewFeatureDeriver(out io.Writer, logger *slog.Logger) *FeatureDeriver {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeatureDeriver{out: out, logger: logger}
}

// Derive returns df with Age Group and Month appended. An unparseable Date
// aborts with a DateParseError; a missing Date yields a missing Month.
func (d *FeatureDeriver) Derive(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	fmt.Fprintln(d.out, "\n--- Phase 2: Feature Engineering ---")

	groups, err := DeriveAgeGroups(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if df, err = replaceColumn(df, groups); err != nil {
		return dataframe.DataFrame{}, err
	}
	fmt.Fprintln(d.out, "Created 'Age Group' column.")

	months, missing, err := DeriveMonths(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if df, err = replaceColumn(df, months); err != nil {
		return dataframe.DataFrame{}, err
	}
	fmt.Fprintln(d.out, "Created 'Month' column.")

	if missing > 0 {
		d.logger.WarnContext(ctx, "Rows without a date have no month",
			slog.Int("rows", missing))
	}
	d.logger.InfoContext(ctx, "Features derived",
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	return df, nil
}

// DeriveAgeGroups computes the Age Group column from Age
func DeriveAgeGroups(df dataframe.DataFrame) (series.Series, error) {
	ages, err := numericColumn(df, domain.ColumnAge)
	if err != nil {
		return series.Series{}, err
	}

	values := make([]string, ages.Len())
	for i := range values {
		// NA elements read as NaN
		values[i] = AgeGroup(ages.Elem(i).Float())
	}
	return series.New(values, series.String, domain.ColumnAgeGroup), nil
}

// DeriveMonths computes the Month column from Date and reports how many rows
// had no date.
func DeriveMonths(df dataframe.DataFrame) (series.Series, int, error) {
	dates, err := column(df, domain.ColumnDate)
	if err != nil {
		return series.Series{}, 0, err
	}
	numeric := dates.Type() == series.Int || dates.Type() == series.Float

	values := make([]string, dates.Len())
	missing := 0
	for i := range values {
		if dates.Elem(i).IsNA() {
			values[i] = naCell
			missing++
			continue
		}
		raw := cellString(dates, i)
		t, err := ParseDate(raw, numeric)
		if err != nil {
			return series.Series{}, 0, apperrors.NewDateParseError(i, raw, err)
		}
		values[i] = MonthAbbrev(t)
	}
	return series.New(values, series.String, domain.ColumnMonth), missing, nil
}
