package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	url := serverURL()
	fmt.Printf("Records API: %s\n", url)

	store, err := sessionStore()
	if err != nil {
		return err
	}
	if store.CheckAuth() {
		if sess, ok := store.Current(); ok {
			expires := time.UnixMilli(sess.ExpiresAt).Format("2006-01-02 15:04")
			fmt.Printf("Session:     %s (expires %s)\n", sess.Username, expires)
		}
	} else {
		fmt.Println("Session:     not logged in")
	}

	probe := &http.Client{Timeout: 5 * time.Second}
	resp, err := probe.Get(url + "/api/visitors")
	if err != nil {
		fmt.Println("Server:      unreachable")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 500 {
		fmt.Println("Server:      ok")
	} else {
		fmt.Printf("Server:      error (%s)\n", resp.Status)
	}
	return nil
}
