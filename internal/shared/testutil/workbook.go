package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"storeinsight/pkg/contracts/domain"
)

// SalesHeader is the column order of fixture workbooks.
var SalesHeader = []string{
	domain.ColumnOrderID,
	domain.ColumnDate,
	domain.ColumnAmount,
	domain.ColumnQty,
	domain.ColumnCategory,
	domain.ColumnStatus,
	domain.ColumnChannel,
	domain.ColumnShipState,
	domain.ColumnGender,
	domain.ColumnAge,
}

// SalesRecord is one fixture row. A nil field leaves the cell empty.
type SalesRecord struct {
	OrderID   any
	Date      any
	Amount    any
	Qty       any
	Category  any
	Status    any
	Channel   any
	ShipState any
	Gender    any
	Age       any
}

func (r SalesRecord) cells() []any {
	return []any{r.OrderID, r.Date, r.Amount, r.Qty, r.Category, r.Status, r.Channel, r.ShipState, r.Gender, r.Age}
}

// WriteSalesWorkbook writes records under SalesHeader to dir/name and returns the path.
func WriteSalesWorkbook(t *testing.T, dir, name string, records []SalesRecord) string {
	t.Helper()

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = r.cells()
	}
	return WriteWorkbook(t, filepath.Join(dir, name), "Sheet1", SalesHeader, rows)
}

// WriteWorkbook writes a single-sheet workbook with a header row.
func WriteWorkbook(t *testing.T, path, sheet string, header []string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		t.Fatalf("write header: %v", err)
	}

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("write %s: %v", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}
