// Package cli defines the cobra command tree for visitdesk.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/client"
	"github.com/tuyishime/visitdesk/internal/session"
)

var (
	flagFormat string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "visitdesk",
		Short:         "Visitor sign-in desk for walk-in visitors",
		Long:          "Register walk-in visitors, and let receptionists browse, filter, edit, and export the visitor log. Visitor records live behind the remote records API; run 'visitdesk serve' for the web kiosk.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "records API base URL (default: from config or http://localhost:8080)")

	root.AddCommand(
		newRegisterCmd(),
		newListCmd(),
		newSearchCmd(),
		newEditCmd(),
		newDepartCmd(),
		newExportCmd(),
		newServeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the visitor-records API.
func newAPIClient() *client.Client {
	return client.New(serverURL())
}

// serverURL resolves the records API base URL: flag, then env/config, then default.
func serverURL() string {
	if flagServer != "" {
		return flagServer
	}
	return getServerURL()
}

// sessionStore opens the receptionist session store at its default path.
func sessionStore() (*session.Store, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	return session.NewStore(path), nil
}

// requireSession fails protected commands when no valid session exists.
// The check is purely local; an expired session is cleared on observation.
func requireSession() (*session.Store, error) {
	store, err := sessionStore()
	if err != nil {
		return nil, err
	}
	if !store.CheckAuth() {
		return nil, fmt.Errorf("not logged in or session expired, run 'visitdesk login'")
	}
	return store, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
