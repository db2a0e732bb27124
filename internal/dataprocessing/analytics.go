package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	apperrors "storeinsight/internal/errors"
	"storeinsight/pkg/contracts/domain"
)

// Aggregate groups df by the view's keys and reduces each measure per group.
// Rows with a missing key are excluded. Sums skip missing values; counts count
// present values of the measured column.
func Aggregate(df dataframe.DataFrame, view View) (*domain.Aggregate, error) {
	if len(view.GroupBy) == 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("view %q has no group keys", view.Heading))
	}

	keys := make([]series.Series, len(view.GroupBy))
	for i, name := range view.GroupBy {
		s, err := column(df, name)
		if err != nil {
			return nil, err
		}
		keys[i] = s
	}

	measures := make([]series.Series, len(view.Measures))
	for i, m := range view.Measures {
		var s series.Series
		var err error
		switch m.Func {
		case domain.MeasureSum:
			s, err = numericColumn(df, m.Column)
		case domain.MeasureCount:
			s, err = column(df, m.Column)
		default:
			err = apperrors.NewAppValidationError(fmt.Sprintf("unknown measure %q", m.Func))
		}
		if err != nil {
			return nil, err
		}
		measures[i] = s
	}

	agg := &domain.Aggregate{
		GroupBy:  append([]string(nil), view.GroupBy...),
		Measures: append([]domain.Measure(nil), view.Measures...),
	}
	index := make(map[string]int)

rows:
	for row := 0; row < df.Nrow(); row++ {
		groupKeys := make([]string, len(keys))
		for i, k := range keys {
			if k.Elem(row).IsNA() {
				continue rows
			}
			groupKeys[i] = cellString(k, row)
		}

		id := strings.Join(groupKeys, "\x00")
		g, ok := index[id]
		if !ok {
			g = len(agg.Rows)
			index[id] = g
			agg.Rows = append(agg.Rows, domain.AggregateRow{
				Keys:   groupKeys,
				Values: make([]decimal.Decimal, len(measures)),
			})
		}

		for i, s := range measures {
			e := s.Elem(row)
			if e.IsNA() {
				continue
			}
			switch view.Measures[i].Func {
			case domain.MeasureSum:
				agg.Rows[g].Values[i] = agg.Rows[g].Values[i].Add(decimal.NewFromFloat(e.Float()))
			case domain.MeasureCount:
				agg.Rows[g].Values[i] = agg.Rows[g].Values[i].Add(decimal.NewFromInt(1))
			}
		}
	}

	sortRows(agg.Rows, view.Order)

	if view.Limit > 0 && len(agg.Rows) > view.Limit {
		agg.Rows = agg.Rows[:view.Limit]
	}
	return agg, nil
}

func sortRows(rows []domain.AggregateRow, order Ordering) {
	byKeys := func(a, b domain.AggregateRow) bool {
		for i := range a.Keys {
			if a.Keys[i] != b.Keys[i] {
				return a.Keys[i] < b.Keys[i]
			}
		}
		return false
	}

	switch order {
	case OrderByKey:
		sort.SliceStable(rows, func(i, j int) bool { return byKeys(rows[i], rows[j]) })
	case OrderByCalendar:
		rank := func(r domain.AggregateRow) int {
			if n, ok := domain.MonthRank(r.Keys[0]); ok {
				return n
			}
			return len(domain.MonthOrder)
		}
		sort.SliceStable(rows, func(i, j int) bool { return rank(rows[i]) < rank(rows[j]) })
	case OrderByValueDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			if c := rows[i].Values[0].Cmp(rows[j].Values[0]); c != 0 {
				return c > 0
			}
			return byKeys(rows[i], rows[j])
		})
	case OrderByFrequency:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Values[0].GreaterThan(rows[j].Values[0])
		})
	}
}

// ChartRenderer draws a chart and returns the written file path
type ChartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec) (string, error)
}

// ViewResult is the outcome of one view
type ViewResult struct {
	View      View
	Aggregate *domain.Aggregate
	ChartPath string
}

// Reporter runs each view: aggregate, print the summary, render the chart.
type Reporter struct {
	out      io.Writer
	renderer ChartRenderer
	logger   *slog.Logger
	views    []View
}

// NewReporter creates a reporter over views; DefaultViews when none are given.
func NewReporter(out io.Writer, renderer ChartRenderer, logger *slog.Logger, views ...View) *Reporter {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(views) == 0 {
		views = DefaultViews()
	}
	return &Reporter{out: out, renderer: renderer, logger: logger, views: views}
}

// Views returns the views the reporter runs
func (r *Reporter) Views() []View {
	return r.views
}

// Run processes every view in order and stops at the first error.
func (r *Reporter) Run(ctx context.Context, df dataframe.DataFrame) ([]ViewResult, error) {
	results := make([]ViewResult, 0, len(r.views))

	for i, view := range r.views {
		agg, err := Aggregate(df, view)
		if err != nil {
			return results, fmt.Errorf("view %q: %w", view.Heading, err)
		}

		if err := WriteSummary(r.out, i+1, view, agg); err != nil {
			return results, apperrors.NewStorageError("failed to write summary", err)
		}

		result := ViewResult{View: view, Aggregate: agg}
		if r.renderer != nil {
			spec := view.Chart
			spec.Data = agg
			path, err := r.renderer.Render(ctx, spec)
			if err != nil {
				return results, fmt.Errorf("view %q: %w", view.Heading, err)
			}
			result.ChartPath = path
		}

		r.logger.DebugContext(ctx, "View reported",
			slog.String("view", view.Heading),
			slog.Int("groups", agg.Len()),
			slog.String("chart", result.ChartPath))
		results = append(results, result)
	}

	return results, nil
}
