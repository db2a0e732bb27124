// Package dataprocessing implements the sales pipeline stages over a gota
// DataFrame: loading the workbook, cleaning, feature derivation and the
// aggregations behind the report.
//
// # Architecture
//
// Each stage takes a DataFrame and returns a new one; no stage mutates a
// frame it was given.
//
//  1. LoadWorkbook reads the first sheet of an xlsx file
//  2. Cleaner normalises Gender and Qty and drops rows missing Amount, Category or Status
//  3. FeatureDeriver appends Age Group and Month
//  4. Reporter runs each View: Aggregate, WriteSummary, then the ChartRenderer
//
// # Usage
//
//	df, err := dataprocessing.LoadWorkbook("Store_data_analysis.xlsx", dataprocessing.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	df, report, err := dataprocessing.NewCleaner(os.Stdout, logger).Clean(ctx, df)
//	df, err = dataprocessing.NewFeatureDeriver(os.Stdout, logger).Derive(ctx, df)
//	results, err := dataprocessing.NewReporter(os.Stdout, renderer, logger).Run(ctx, df)
//
// # Data Flow
//
//	xlsx → LoadWorkbook → Cleaner → FeatureDeriver → Aggregate → summary + chart
//
// # Error Handling
//
// Errors are *errors.AppError values from internal/errors:
//
//   - a missing input file is ErrTypeNotFound
//   - an absent or mistyped column is ErrTypeSchema
//   - an unparseable Date is ErrTypeParsing and carries the row and raw value
//
// No stage recovers from an error; the caller aborts the run.
package dataprocessing
