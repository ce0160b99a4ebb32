package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

func newEditCmd() *cobra.Command {
	var (
		name       string
		idNumber   string
		phone      string
		purpose    string
		department string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a visitor's details",
		Long:  "Updates the given fields of a visitor record. The visit date, arrival time and departure time cannot be changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid visitor ID: %s", args[0])
			}

			changes := map[string]string{}
			if cmd.Flags().Changed("name") {
				changes["names"] = name
			}
			if cmd.Flags().Changed("id-number") {
				changes["idNumber"] = idNumber
			}
			if cmd.Flags().Changed("phone") {
				changes["phone"] = visitor.NormalizePhone(phone)
			}
			if cmd.Flags().Changed("purpose") {
				changes["purpose"] = purpose
			}
			if cmd.Flags().Changed("department") {
				changes["departmentToVisit"] = department
			}

			return runEdit(id, changes)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "visitor's full name")
	cmd.Flags().StringVar(&idNumber, "id-number", "", "16-digit national ID number")
	cmd.Flags().StringVar(&phone, "phone", "", "10-digit phone number")
	cmd.Flags().StringVar(&purpose, "purpose", "", "purpose of the visit")
	cmd.Flags().StringVar(&department, "department", "", "department to visit")

	return cmd
}

func runEdit(id int64, changes map[string]string) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	if len(changes) == 0 {
		return fmt.Errorf("nothing to change (set at least one field flag)")
	}

	if dept, ok := changes["departmentToVisit"]; ok && !visitor.Department(dept).IsValid() {
		return fmt.Errorf("unknown department %q", dept)
	}

	c := newAPIClient()

	v, err := c.UpdateVisitor(id, changes)
	if err != nil {
		return fmt.Errorf("updating visitor: %w", err)
	}

	if isJSON() {
		return printJSON(v)
	}

	fmt.Printf("✓ Visitor #%d updated\n", v.ID)
	printVisitorSummary(v)
	return nil
}
