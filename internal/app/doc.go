// Package app assembles one storeinsight run: configuration, the slog logger,
// OpenTelemetry providers and the operations pipeline.
//
// The caller owns the process exit:
//
//	application, err := app.NewApplication(os.Stdout, os.Stderr)
//	if err != nil {
//	    ...
//	}
//	defer application.Stop(ctx)
//	_, err = application.Run(ctx)
//
// Errors are returned unchanged so a missing input workbook can still be told
// apart with errors.IsMissingFile.
package app
