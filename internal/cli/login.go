package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuyishime/visitdesk/internal/auth"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in as a receptionist",
		Long:  "Verifies receptionist credentials and stores a one-hour session locally.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin()
		},
	}
}

func runLogin() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	verifier := auth.NewStaticVerifier(nil)
	if !verifier.Verify(username, password) {
		return fmt.Errorf("invalid username or password")
	}

	store, err := sessionStore()
	if err != nil {
		return err
	}

	sess, err := store.Login(username)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	if flagServer != "" {
		cfg, err := loadConfig()
		if err != nil {
			cfg = CLIConfig{}
		}
		cfg.ServerURL = flagServer
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	until := time.UnixMilli(sess.ExpiresAt).Format("15:04")
	fmt.Printf("✓ Logged in as %s (session valid until %s)\n", sess.Username, until)
	return nil
}
