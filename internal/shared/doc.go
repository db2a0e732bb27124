// Package shared holds helpers used by more than one storeinsight package.
//
// The testutil subpackage builds fixture workbooks with excelize and captures
// slog records for assertions in tests.
package shared
