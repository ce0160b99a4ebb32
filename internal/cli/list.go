package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/report"
	"github.com/tuyishime/visitdesk/internal/visitor"
)

// filterFlags are the shared dashboard filter options for list and export.
type filterFlags struct {
	period string
	date   string
	search string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.period, "period", "day", "filter window: day, week, month or year")
	cmd.Flags().StringVar(&f.date, "date", "", "show a specific day (YYYY-MM-DD, overrides --period)")
	cmd.Flags().StringVar(&f.search, "search", "", "filter by name, case-insensitive")
}

// state resolves the flags into a filter. An explicit date always means a
// single-day window, same as picking a date on the dashboard.
func (f *filterFlags) state() (report.FilterState, error) {
	loc := visitor.Location()

	period := report.Period(f.period)
	if !period.IsValid() {
		return report.FilterState{}, fmt.Errorf("invalid period %q (want day, week, month or year)", f.period)
	}
	anchor := report.DefaultAnchor(period, time.Now().In(loc))

	if f.date != "" {
		d, err := time.ParseInLocation("2006-01-02", f.date, loc)
		if err != nil {
			return report.FilterState{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", f.date)
		}
		period = report.PeriodDay
		anchor = d
	}

	return report.FilterState{Period: period, Anchor: anchor, Search: f.search}, nil
}

func newListCmd() *cobra.Command {
	var filter filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visitors for a period",
		Long:  "Lists visitors whose visit date falls in the selected period, in order of arrival.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(filter)
		},
	}

	filter.register(cmd)

	return cmd
}

func runList(filter filterFlags) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	state, err := filter.state()
	if err != nil {
		return err
	}

	c := newAPIClient()

	visitors, err := c.ListVisitors()
	if err != nil {
		return fmt.Errorf("fetching visitors: %w", err)
	}
	visible := report.Apply(visitors, state)

	if isJSON() {
		return printJSON(visible)
	}

	if len(visible) == 0 {
		fmt.Println("No visitors found.")
		return nil
	}

	return printVisitorTable(visible)
}
