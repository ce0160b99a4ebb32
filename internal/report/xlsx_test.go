package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

func TestFilename(t *testing.T) {
	if got := Filename(PeriodWeek); got != "visitors_report_week.xlsx" {
		t.Errorf("filename = %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	departed := "16:45"
	vs := []*visitor.Visitor{
		{
			ID: 1, Names: "Anna Mwiza", IDNumber: "1234567890123456",
			Phone: "0788123456", Purpose: "Meeting",
			DepartmentToVisit: "Human Resources",
			VisitDate:         "2024-06-10", ArrivalTime: "09:30",
			DepartureTime: &departed,
		},
		{
			ID: 2, Names: "John Doe", IDNumber: "6543210987654321",
			Phone: "0722987654", Purpose: "Delivery",
			DepartmentToVisit: "Digitization",
			VisitDate:         "2024-06-10", ArrivalTime: "11:00",
		},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, vs); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			t.Errorf("close: %v", cerr)
		}
	}()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("sheet %q: %v", sheetName, err)
	}

	// Header plus one row per visitor
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "No." || rows[0][1] != "Name" || rows[0][8] != "Departure Time" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "Anna Mwiza" || rows[1][8] != "16:45" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "2" || rows[2][8] != "Not departed" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			t.Errorf("close: %v", cerr)
		}
	}()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}
