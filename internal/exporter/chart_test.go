package exporter

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"storeinsight/internal/config"
	apperrors "storeinsight/internal/errors"
	"storeinsight/internal/shared/testutil"
	"storeinsight/pkg/contracts/domain"
)

var (
	sumAmount    = domain.Measure{Column: domain.ColumnAmount, Func: domain.MeasureSum}
	countOrderID = domain.Measure{Column: domain.ColumnOrderID, Func: domain.MeasureCount}
)

// aggregate builds an aggregate from rows of keys followed by values.
func aggregate(groupBy []string, measures []domain.Measure, rows ...[]any) *domain.Aggregate {
	agg := &domain.Aggregate{GroupBy: groupBy, Measures: measures}
	for _, r := range rows {
		row := domain.AggregateRow{}
		for i, v := range r {
			if i < len(groupBy) {
				row.Keys = append(row.Keys, v.(string))
				continue
			}
			row.Values = append(row.Values, decimal.NewFromFloat(v.(float64)))
		}
		agg.Rows = append(agg.Rows, row)
	}
	return agg
}

func chartSpecs() []domain.ChartSpec {
	return []domain.ChartSpec{
		{
			Kind:           domain.ChartBarLine,
			Title:          "Monthly Sales and Order Trends",
			File:           "monthly_trend.png",
			XLabel:         "Month",
			YLabel:         "Total Sales (Amount)",
			SecondaryLabel: "Total Orders",
			Data: aggregate([]string{domain.ColumnMonth}, []domain.Measure{sumAmount, countOrderID},
				[]any{"Jan", 30.0, 2.0}, []any{"Mar", 5.0, 1.0}),
		},
		{
			Kind:   domain.ChartPie,
			Title:  "Sales Distribution by Gender",
			File:   "sales_by_gender.png",
			Colors: []string{"#ff9999", "#66b3ff"},
			Data: aggregate([]string{domain.ColumnGender}, []domain.Measure{sumAmount},
				[]any{"Man", 120.5}, []any{"Women", 410.0}),
		},
		{
			Kind:   domain.ChartHorizontalBar,
			Title:  "Top 5 Performing States by Sales",
			File:   "top_5_states.png",
			XLabel: "Total Sales (Amount)",
			Data: aggregate([]string{domain.ColumnShipState}, []domain.Measure{sumAmount},
				[]any{"KERALA", 753.33}, []any{"GOA", 574.0}, []any{"KARNATAKA", 406.5}),
		},
		{
			Kind:   domain.ChartGroupedBar,
			Title:  "Orders by Age Group and Gender",
			File:   "age_gender_analysis.png",
			XLabel: "Age Group",
			YLabel: "Total Orders",
			Data: aggregate([]string{domain.ColumnAgeGroup, domain.ColumnGender}, []domain.Measure{countOrderID},
				[]any{"Adult", "Man", 3.0}, []any{"Adult", "Women", 5.0}, []any{"Senior", "Women", 1.0}),
		},
	}
}

func newTestWriter(t *testing.T, theme Theme) (*ChartWriter, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "outputs")
	logger, _ := testutil.NewTestLogger(t)
	return NewChartWriter(&config.Paths{OutputDir: dir}, theme, 50, logger), dir
}

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestChartWriter_Render(t *testing.T) {
	for _, spec := range chartSpecs() {
		t.Run(string(spec.Kind), func(t *testing.T) {
			writer, dir := newTestWriter(t, DefaultTheme())

			path, err := writer.Render(context.Background(), spec)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, spec.File), path)

			width, height := decodePNG(t, path)
			if spec.Kind == domain.ChartPie {
				assert.Equal(t, 400, width)
				assert.Equal(t, 400, height)
			} else {
				assert.Equal(t, 500, width)
				assert.Equal(t, 300, height)
			}
		})
	}
}

func TestChartWriter_Themes(t *testing.T) {
	for _, name := range []string{ThemeWhiteGrid, ThemeDarkGrid, ThemeWhite, ThemeTicks} {
		t.Run(name, func(t *testing.T) {
			theme, err := ThemeFor(name)
			require.NoError(t, err)
			writer, _ := newTestWriter(t, theme)
			assert.Equal(t, name, writer.Theme().Name)

			for _, spec := range chartSpecs() {
				_, err := writer.Render(context.Background(), spec)
				require.NoError(t, err, spec.File)
			}
		})
	}
}

func TestChartWriter_EmptyData(t *testing.T) {
	for _, spec := range chartSpecs() {
		t.Run(string(spec.Kind), func(t *testing.T) {
			writer, _ := newTestWriter(t, DefaultTheme())
			spec.Data = &domain.Aggregate{GroupBy: spec.Data.GroupBy, Measures: spec.Data.Measures}

			path, err := writer.Render(context.Background(), spec)
			require.NoError(t, err)
			assert.FileExists(t, path)
		})
	}
}

func TestChartWriter_Overwrites(t *testing.T) {
	writer, dir := newTestWriter(t, DefaultTheme())
	spec := chartSpecs()[1]

	require.NoError(t, os.MkdirAll(dir, 0755))
	stale := filepath.Join(dir, spec.File)
	require.NoError(t, os.WriteFile(stale, []byte("stale content that is not a png"), 0644))

	path, err := writer.Render(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, stale, path)
	decodePNG(t, path)
}

func TestChartWriter_DefaultDPI(t *testing.T) {
	dir := t.TempDir()
	writer := NewChartWriter(&config.Paths{OutputDir: dir}, DefaultTheme(), 0, nil)

	path, err := writer.Render(context.Background(), chartSpecs()[0])
	require.NoError(t, err)

	width, height := decodePNG(t, path)
	assert.Equal(t, 10*config.DefaultDPI, width)
	assert.Equal(t, 6*config.DefaultDPI, height)
}

func TestChartWriter_Errors(t *testing.T) {
	monthly := chartSpecs()[0]

	oneMeasure := monthly
	oneMeasure.Data = aggregate([]string{domain.ColumnMonth}, []domain.Measure{sumAmount}, []any{"Jan", 1.0})

	grouped := chartSpecs()[3]
	grouped.Data = aggregate([]string{domain.ColumnAgeGroup}, []domain.Measure{countOrderID}, []any{"Adult", 1.0})

	badColour := chartSpecs()[1]
	badColour.Colors = []string{"salmon"}

	tests := []struct {
		name     string
		spec     domain.ChartSpec
		wantType apperrors.ErrorType
	}{
		{name: "no data", spec: domain.ChartSpec{Kind: domain.ChartPie, File: "x.png"}, wantType: apperrors.ErrTypeValidation},
		{name: "no file", spec: domain.ChartSpec{Kind: domain.ChartPie, Data: monthly.Data}, wantType: apperrors.ErrTypeValidation},
		{name: "unknown kind", spec: domain.ChartSpec{Kind: "radar", File: "x.png", Data: monthly.Data}, wantType: apperrors.ErrTypeValidation},
		{name: "bar line without second measure", spec: oneMeasure, wantType: apperrors.ErrTypeValidation},
		{name: "grouped bar without second key", spec: grouped, wantType: apperrors.ErrTypeValidation},
		{name: "bad colour override", spec: badColour, wantType: apperrors.ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, dir := newTestWriter(t, DefaultTheme())

			_, err := writer.Render(context.Background(), tt.spec)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
			assert.NoDirExists(t, dir)
		})
	}
}

func TestChartWriter_OutputDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "outputs")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	writer := NewChartWriter(&config.Paths{OutputDir: blocker}, DefaultTheme(), 50, nil)

	_, err := writer.Render(context.Background(), chartSpecs()[0])
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestGroupedBarHelpers(t *testing.T) {
	agg := chartSpecs()[3].Data

	assert.Equal(t, []string{"Adult", "Senior"}, distinct(agg, 0))
	assert.Equal(t, []string{"Man", "Women"}, distinct(agg, 1))
	assert.Equal(t, map[string]int{"Man": 0, "Women": 1}, indexOf([]string{"Man", "Women"}))
}

func TestSequentialColor(t *testing.T) {
	palette := viridis

	assert.Equal(t, palette[0], sequentialColor(palette, 0, 1))
	assert.Equal(t, palette[0], sequentialColor(palette, 0, 5))
	assert.Equal(t, palette[len(palette)-1], sequentialColor(palette, 4, 5))
	assert.NotNil(t, sequentialColor(nil, 2, 3))
}

func TestChartWriter_CategoryPadding(t *testing.T) {
	writer, _ := newTestWriter(t, DefaultTheme())

	tests := []struct {
		name     string
		spec     domain.ChartSpec
		axis     func(fig *figure) *plot.Axis
		min, max float64
	}{
		{name: "monthly trend", spec: chartSpecs()[0], axis: func(fig *figure) *plot.Axis { return &fig.plot.X }, min: -0.5, max: 1.5},
		{name: "grouped bar", spec: chartSpecs()[3], axis: func(fig *figure) *plot.Axis { return &fig.plot.X }, min: -0.5, max: 1.5},
		{name: "horizontal bar", spec: chartSpecs()[2], axis: func(fig *figure) *plot.Axis { return &fig.plot.Y }, min: -0.5, max: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := writer.build(tt.spec)
			require.NoError(t, err)

			axis := tt.axis(fig)
			assert.Equal(t, tt.min, axis.Min)
			assert.Equal(t, tt.max, axis.Max)
		})
	}
}

func TestChartWriter_SalesAxisTicks(t *testing.T) {
	writer, _ := newTestWriter(t, DefaultTheme())
	spec := chartSpecs()[0]
	spec.Data = aggregate([]string{domain.ColumnMonth}, []domain.Measure{sumAmount, countOrderID},
		[]any{"Jan", 2750.0, 31.0}, []any{"Feb", 1980.5, 29.0})

	fig, err := writer.build(spec)
	require.NoError(t, err)

	p := fig.plot
	var labels []string
	for _, tick := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		if !tick.IsMinor() {
			labels = append(labels, tick.Label)
		}
	}
	assert.Equal(t, []string{"0", "500", "1000", "1500", "2000", "2500"}, labels)
}

func TestValueTicks(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		want     []string
	}{
		{name: "sales range", min: 0, max: 2750, want: []string{"0", "500", "1000", "1500", "2000", "2500"}},
		{name: "small counts", min: 0, max: 3, want: []string{"0.0", "0.5", "1.0", "1.5", "2.0", "2.5", "3.0"}},
		{name: "offset range", min: 15, max: 60, want: []string{"20", "30", "40", "50", "60"}},
		{name: "empty range", min: 4, max: 4, want: []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var labels []string
			for _, tick := range (valueTicks{}).Ticks(tt.min, tt.max) {
				labels = append(labels, tick.Label)
			}
			assert.Equal(t, tt.want, labels)
		})
	}
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw      float64
		wantStep float64
		wantPrec int
	}{
		{raw: 392.8, wantStep: 500, wantPrec: 0},
		{raw: 1.2, wantStep: 2, wantPrec: 0},
		{raw: 0.43, wantStep: 0.5, wantPrec: 1},
		{raw: 7, wantStep: 10, wantPrec: 0},
	}

	for _, tt := range tests {
		step, prec := niceStep(tt.raw)
		assert.InDelta(t, tt.wantStep, step, 1e-9, tt.raw)
		assert.Equal(t, tt.wantPrec, prec, tt.raw)
	}
}
