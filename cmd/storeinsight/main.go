// Command storeinsight cleans the store sales workbook, derives the Age Group
// and Month features and writes six summary charts.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"storeinsight/internal/app"
	apperrors "storeinsight/internal/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr))
}

// run executes one pipeline and returns the process exit code. A missing
// input workbook is reported on stdout and still exits 0.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	application, err := app.NewApplication(stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Stop(ctx)

	if _, err := application.Run(ctx); err != nil {
		if apperrors.IsMissingFile(err) {
			fmt.Fprintf(stdout, "Error: %s not found!\n", application.Paths.InputFile)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "\nAnalysis complete! Charts saved in '%s/' folder.\n", application.Config.Output.Dir)
	return 0
}
