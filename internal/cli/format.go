package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVisitorSummary prints a single visitor in text format.
func printVisitorSummary(v *visitor.Visitor) {
	fmt.Printf("Visitor #%d\n", v.ID)
	fmt.Printf("  Name:       %s\n", v.Names)
	fmt.Printf("  ID number:  %s\n", v.IDNumber)
	fmt.Printf("  Phone:      %s\n", v.Phone)
	fmt.Printf("  Purpose:    %s\n", v.Purpose)
	fmt.Printf("  Department: %s\n", v.DepartmentToVisit)
	fmt.Printf("  Visit:      %s %s\n", v.VisitDate, v.ArrivalTime)
	fmt.Printf("  Departure:  %s\n", v.DepartureLabel())
}

// printVisitorTable prints a list of visitors as a formatted table.
func printVisitorTable(visitors []*visitor.Visitor) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tPHONE\tPURPOSE\tDEPARTMENT\tDATE\tARRIVED\tDEPARTED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t-----\t-------\t----------\t----\t-------\t--------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, v := range visitors {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, truncate(v.Names, 30), v.Phone, truncate(v.Purpose, 30),
			truncate(v.DepartmentToVisit, 30), v.VisitDate, v.ArrivalTime,
			v.DepartureLabel()); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d visitors\n", len(visitors))
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
