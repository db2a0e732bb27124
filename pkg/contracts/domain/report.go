package domain

import (
	"github.com/shopspring/decimal"
)

// MeasureFunc defines how a measure reduces a group
type MeasureFunc string

const (
	MeasureSum   MeasureFunc = "sum"
	MeasureCount MeasureFunc = "count"
)

// Measure is one reduced value per group, e.g. sum of Amount.
type Measure struct {
	Column string      `json:"column"`
	Func   MeasureFunc `json:"func"`
}

// Label returns the column heading used when printing the measure.
func (m Measure) Label() string {
	return m.Column
}

// Format renders a value of this measure: counts as integers, sums with two
// decimals.
func (m Measure) Format(v decimal.Decimal) string {
	if m.Func == MeasureCount {
		return v.String()
	}
	return v.StringFixed(2)
}

// AggregateRow holds the group key values and one value per measure.
type AggregateRow struct {
	Keys   []string          `json:"keys"`
	Values []decimal.Decimal `json:"values"`
}

// Aggregate is the ordered result of a group-by over the sales table.
type Aggregate struct {
	GroupBy  []string       `json:"group_by"`
	Measures []Measure      `json:"measures"`
	Rows     []AggregateRow `json:"rows"`
}

// Len returns the number of groups.
func (a *Aggregate) Len() int {
	return len(a.Rows)
}

// Labels returns the first key of every row.
func (a *Aggregate) Labels() []string {
	labels := make([]string, len(a.Rows))
	for i, r := range a.Rows {
		labels[i] = r.Keys[0]
	}
	return labels
}

// Floats returns the values of measure i as float64.
func (a *Aggregate) Floats(i int) []float64 {
	out := make([]float64, len(a.Rows))
	for j, r := range a.Rows {
		out[j] = r.Values[i].InexactFloat64()
	}
	return out
}

// ChartKind selects the chart renderer
type ChartKind string

const (
	ChartBarLine       ChartKind = "bar_line"
	ChartPie           ChartKind = "pie"
	ChartHorizontalBar ChartKind = "horizontal_bar"
	ChartGroupedBar    ChartKind = "grouped_bar"
)

// ChartSpec describes one chart to render from an aggregate.
type ChartSpec struct {
	Kind           ChartKind `json:"kind"`
	Title          string    `json:"title"`
	File           string    `json:"file"`
	XLabel         string    `json:"x_label,omitempty"`
	YLabel         string    `json:"y_label,omitempty"`
	SecondaryLabel string    `json:"secondary_label,omitempty"`
	// Colors overrides the theme palette, as hex strings.
	Colors []string   `json:"colors,omitempty"`
	Data   *Aggregate `json:"-"`
}
