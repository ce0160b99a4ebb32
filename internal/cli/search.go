package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search visitors by name",
		Long:  "Asks the records API for visitors whose name matches the given term.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	term := strings.Join(args, " ")

	c := newAPIClient()

	visitors, err := c.SearchVisitors(term)
	if err != nil {
		return fmt.Errorf("searching visitors: %w", err)
	}

	if isJSON() {
		return printJSON(visitors)
	}

	if len(visitors) == 0 {
		fmt.Printf("No visitors matching %q.\n", term)
		return nil
	}

	return printVisitorTable(visitors)
}
