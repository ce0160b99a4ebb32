package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

func newRegisterCmd() *cobra.Command {
	var reg visitor.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a visitor",
		Long:  "Registers a visitor arriving now. The visit date and arrival time are stamped automatically.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(reg)
		},
	}

	cmd.Flags().StringVar(&reg.Names, "name", "", "visitor's full name (required)")
	cmd.Flags().StringVar(&reg.IDNumber, "id-number", "", "16-digit national ID number (required)")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "10-digit phone number (required)")
	cmd.Flags().StringVar(&reg.Purpose, "purpose", "", "purpose of the visit (required)")
	cmd.Flags().StringVar(&reg.DepartmentToVisit, "department", "", "department to visit (required)")

	return cmd
}

func runRegister(reg visitor.Registration) error {
	reg.Phone = visitor.NormalizePhone(reg.Phone)
	reg.VisitDate, reg.ArrivalTime = visitor.Stamp(time.Now())

	if err := reg.Validate(); err != nil {
		return err
	}

	c := newAPIClient()

	v, err := c.RegisterVisitor(reg)
	if err != nil {
		return fmt.Errorf("registering visitor: %w", err)
	}

	if isJSON() {
		return printJSON(v)
	}

	fmt.Printf("✓ Registered %s for %s at %s\n", v.Names, v.DepartmentToVisit, v.ArrivalTime)
	return nil
}
