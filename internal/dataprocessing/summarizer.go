package dataprocessing

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"storeinsight/pkg/contracts/domain"
)

// WriteSummary prints one view as a numbered heading followed by an aligned
// table: the group keys, then one column per measure. Sums print with two
// decimals and counts as integers, so identical input yields identical text.
func WriteSummary(w io.Writer, number int, view View, agg *domain.Aggregate) error {
	if _, err := fmt.Fprintf(w, "\n%d. %s:\n", number, view.Heading); err != nil {
		return err
	}

	if agg.Len() == 0 {
		_, err := fmt.Fprintln(w, "(no data)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	header := append([]string(nil), agg.GroupBy...)
	for _, m := range agg.Measures {
		header = append(header, measureHeading(m, agg.GroupBy))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range agg.Rows {
		cells := append([]string(nil), row.Keys...)
		for i, m := range agg.Measures {
			cells = append(cells, m.Format(row.Values[i]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

// measureHeading names a measure column; counting a group key prints "count".
func measureHeading(m domain.Measure, groupBy []string) string {
	for _, g := range groupBy {
		if g == m.Column && m.Func == domain.MeasureCount {
			return "count"
		}
	}
	return m.Label()
}

