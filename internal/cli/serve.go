package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/auth"
	"github.com/tuyishime/visitdesk/internal/db"
	"github.com/tuyishime/visitdesk/internal/logging"
	"github.com/tuyishime/visitdesk/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port   int
		dbPath string
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Starts the HTTP server for the visitor sign-in and dashboard pages.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, dbPath, dev)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "", "path to the session database (default ~/.config/visitdesk/visitdesk.db)")
	cmd.Flags().BoolVar(&dev, "dev", false, "log human-readable text instead of JSON")

	return cmd
}

func runServe(port int, dbPath string, dev bool) error {
	logging.Setup(dev)

	if dbPath == "" {
		var err error
		dbPath, err = db.DefaultPath()
		if err != nil {
			return err
		}
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	srv, err := web.NewServer(database, serverURL(), auth.NewStaticVerifier(nil))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	slog.Info("starting web UI",
		"addr", fmt.Sprintf("http://localhost:%d", port),
		"api", serverURL(),
		"db", dbPath)

	return srv.ListenAndServe(port)
}
