package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

const sheetName = "Visitors"

// headers is the fixed export header row.
var headers = []string{
	"No.", "Name", "ID Number", "Phone", "Purpose",
	"Department", "Visit Date", "Arrival Time", "Departure Time",
}

// Filename returns the export filename for the active period.
func Filename(period Period) string {
	return fmt.Sprintf("visitors_report_%s.xlsx", period)
}

// WriteXLSX writes the visitor list as a spreadsheet workbook: one sheet
// named "Visitors", the fixed header row, then one row per visitor with a
// 1-based index in the first column.
func WriteXLSX(w io.Writer, visitors []*visitor.Visitor) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("warning: closing workbook: %v\n", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, v := range visitors {
		row := []interface{}{
			i + 1,
			v.Names,
			v.IDNumber,
			v.Phone,
			v.Purpose,
			v.DepartmentToVisit,
			v.VisitDate,
			v.ArrivalTime,
			v.DepartureLabel(),
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
