package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDepartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "depart <id>",
		Short: "Record a visitor's departure",
		Long:  "Stamps the visitor's departure with the current time. A departure can only be recorded once.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDepart,
	}
}

func runDepart(cmd *cobra.Command, args []string) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid visitor ID: %s", args[0])
	}

	c := newAPIClient()

	v, err := c.RecordDeparture(id)
	if err != nil {
		return fmt.Errorf("recording departure: %w", err)
	}

	if isJSON() {
		return printJSON(v)
	}

	fmt.Printf("✓ %s departed at %s\n", v.Names, v.DepartureLabel())
	return nil
}
