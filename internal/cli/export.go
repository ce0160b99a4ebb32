package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/report"
)

func newExportCmd() *cobra.Command {
	var filter filterFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export visitors to a spreadsheet",
		Long:  "Writes the visitors for the selected period to an xlsx file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(filter, output)
		},
	}

	filter.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default visitors_report_<period>.xlsx)")

	return cmd
}

func runExport(filter filterFlags, output string) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	state, err := filter.state()
	if err != nil {
		return err
	}
	if output == "" {
		output = report.Filename(state.Period)
	}

	c := newAPIClient()

	visitors, err := c.ListVisitors()
	if err != nil {
		return fmt.Errorf("fetching visitors: %w", err)
	}
	visible := report.Apply(visitors, state)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	if err := report.WriteXLSX(f, visible); err != nil {
		f.Close()
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("✓ Wrote %d visitors to %s\n", len(visible), output)
	return nil
}
