// Package exporter writes the report artefacts: one PNG chart per view and,
// optionally, the aggregate behind it as CSV.
//
// ChartWriter draws a domain.ChartSpec with gonum/plot. The chart kind picks
// the layout:
//
//   - bar_line: bars on the left axis, a line with markers on an independent right axis
//   - pie: wedges from 140 degrees counter-clockwise with percentage labels
//   - horizontal_bar: ranked bars, largest at the top
//   - grouped_bar: first group key on the x-axis, one bar per value of the second
//
// Colours, grid and tick marks come from the Theme handed to NewChartWriter.
//
// TableWriter writes CSV with a UTF-8 BOM so spreadsheets detect the encoding.
// It is a no-op unless a tables directory is configured.
//
// Example usage:
//
//	theme, err := exporter.ThemeFor(cfg.Chart.Theme)
//	if err != nil {
//	    return err
//	}
//	charts := exporter.NewChartWriter(cfg.Paths(), theme, cfg.Chart.DPI, logger)
//	path, err := charts.Render(ctx, spec)
package exporter
