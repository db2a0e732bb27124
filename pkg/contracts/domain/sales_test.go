package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthRank(t *testing.T) {
	tests := []struct {
		month  string
		want   int
		wantOK bool
	}{
		{month: "Jan", want: 0, wantOK: true},
		{month: "Mar", want: 2, wantOK: true},
		{month: "Dec", want: 11, wantOK: true},
		{month: "jan", want: -1, wantOK: false},
		{month: "", want: -1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got, ok := MonthRank(tt.month)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestAggregateAccessors(t *testing.T) {
	agg := &Aggregate{
		GroupBy:  []string{ColumnMonth},
		Measures: []Measure{{Column: ColumnAmount, Func: MeasureSum}, {Column: ColumnOrderID, Func: MeasureCount}},
		Rows: []AggregateRow{
			{Keys: []string{"Jan"}, Values: []decimal.Decimal{decimal.NewFromFloat(30), decimal.NewFromInt(2)}},
			{Keys: []string{"Mar"}, Values: []decimal.Decimal{decimal.NewFromFloat(5.5), decimal.NewFromInt(1)}},
		},
	}

	assert.Equal(t, 2, agg.Len())
	assert.Equal(t, []string{"Jan", "Mar"}, agg.Labels())
	assert.Equal(t, []float64{30, 5.5}, agg.Floats(0))
	assert.Equal(t, []float64{2, 1}, agg.Floats(1))
	assert.Equal(t, "Order ID", agg.Measures[1].Label())
}

func TestMeasureFormat(t *testing.T) {
	tests := []struct {
		name    string
		measure Measure
		value   decimal.Decimal
		want    string
	}{
		{name: "sum pads decimals", measure: Measure{Column: ColumnAmount, Func: MeasureSum}, value: decimal.NewFromInt(30), want: "30.00"},
		{name: "sum rounds", measure: Measure{Column: ColumnAmount, Func: MeasureSum}, value: decimal.RequireFromString("753.335"), want: "753.34"},
		{name: "count is integral", measure: Measure{Column: ColumnOrderID, Func: MeasureCount}, value: decimal.NewFromInt(12), want: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.measure.Format(tt.value))
		})
	}
}
