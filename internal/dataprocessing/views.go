package dataprocessing

import (
	"storeinsight/pkg/contracts/domain"
)

// Ordering selects how aggregate rows are sorted
type Ordering string

const (
	// OrderByKey sorts by group keys ascending.
	OrderByKey Ordering = "key"
	// OrderByCalendar sorts a month key Jan..Dec.
	OrderByCalendar Ordering = "calendar"
	// OrderByValueDesc sorts by the first measure descending, ties by key.
	OrderByValueDesc Ordering = "value_desc"
	// OrderByFrequency sorts by the first measure descending, ties keep
	// first-seen order.
	OrderByFrequency Ordering = "frequency"
)

// View is one aggregation plus the chart that renders it
type View struct {
	Heading  string
	GroupBy  []string
	Measures []domain.Measure
	Order    Ordering
	// Limit keeps only the first Limit rows when positive.
	Limit int
	Chart domain.ChartSpec
}

const (
	salesLabel  = "Total Sales (Amount)"
	ordersLabel = "Total Orders"
)

var (
	sumAmount    = domain.Measure{Column: domain.ColumnAmount, Func: domain.MeasureSum}
	countOrderID = domain.Measure{Column: domain.ColumnOrderID, Func: domain.MeasureCount}
)

// DefaultViews returns the six report views in print order.
func DefaultViews() []View {
	return []View{
		{
			Heading:  "Orders vs. Sales (Monthly Trend)",
			GroupBy:  []string{domain.ColumnMonth},
			Measures: []domain.Measure{sumAmount, countOrderID},
			Order:    OrderByCalendar,
			Chart: domain.ChartSpec{
				Kind:           domain.ChartBarLine,
				Title:          "Monthly Sales and Order Trends",
				File:           "monthly_trend.png",
				XLabel:         domain.ColumnMonth,
				YLabel:         salesLabel,
				SecondaryLabel: ordersLabel,
			},
		},
		{
			Heading:  "Sales by Gender",
			GroupBy:  []string{domain.ColumnGender},
			Measures: []domain.Measure{sumAmount},
			Order:    OrderByKey,
			Chart: domain.ChartSpec{
				Kind:   domain.ChartPie,
				Title:  "Sales Distribution by Gender",
				File:   "sales_by_gender.png",
				Colors: []string{"#ff9999", "#66b3ff"},
			},
		},
		{
			Heading:  "Order Status Breakdown",
			GroupBy:  []string{domain.ColumnStatus},
			Measures: []domain.Measure{{Column: domain.ColumnStatus, Func: domain.MeasureCount}},
			Order:    OrderByFrequency,
			Chart: domain.ChartSpec{
				Kind:  domain.ChartPie,
				Title: "Order Status Breakdown",
				File:  "order_status_breakdown.png",
			},
		},
		{
			Heading:  "Top 5 Performing States",
			GroupBy:  []string{domain.ColumnShipState},
			Measures: []domain.Measure{sumAmount},
			Order:    OrderByValueDesc,
			Limit:    5,
			Chart: domain.ChartSpec{
				Kind:   domain.ChartHorizontalBar,
				Title:  "Top 5 Performing States by Sales",
				File:   "top_5_states.png",
				XLabel: salesLabel,
				YLabel: domain.ColumnShipState,
			},
		},
		{
			Heading:  "Age & Gender Analysis (Order Counts)",
			GroupBy:  []string{domain.ColumnAgeGroup, domain.ColumnGender},
			Measures: []domain.Measure{countOrderID},
			Order:    OrderByKey,
			Chart: domain.ChartSpec{
				Kind:   domain.ChartGroupedBar,
				Title:  "Orders by Age Group and Gender",
				File:   "age_gender_analysis.png",
				XLabel: domain.ColumnAgeGroup,
				YLabel: ordersLabel,
			},
		},
		{
			Heading:  "Sales by Channel",
			GroupBy:  []string{domain.ColumnChannel},
			Measures: []domain.Measure{sumAmount},
			Order:    OrderByKey,
			Chart: domain.ChartSpec{
				Kind:  domain.ChartPie,
				Title: "Sales Distribution by Channel",
				File:  "sales_by_channel.png",
			},
		},
	}
}
