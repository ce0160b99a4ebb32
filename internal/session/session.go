// Package session manages the receptionist's client-side session: a token,
// its expiry, and the username, persisted together in one file under the
// user config dir. Validity is decided entirely from local state, with no
// network call; the token issuer is the desk application itself.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gopkg.in/yaml.v3"
)

// TTL is how long a login remains valid.
const TTL = time.Hour

// tokenSecret signs locally-minted session tokens. There is no remote
// verifier; the signature only ties the token to this installation.
var tokenSecret = []byte("visitdesk-local-session")

// Session is one receptionist login. The three fields are always written
// and cleared together; a partial session is treated as no session.
type Session struct {
	Token     string `yaml:"auth_token"`
	ExpiresAt int64  `yaml:"token_expiration"` // epoch milliseconds
	Username  string `yaml:"username"`
}

// Store reads and writes the session file, handing out immutable snapshots.
type Store struct {
	path string
	now  func() time.Time
}

// DefaultPath returns the session file path: ~/.config/visitdesk/session.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "visitdesk", "session.yaml"), nil
}

// NewStore creates a store over the given session file path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Login mints a fresh token expiring one hour from now and replaces the
// stored session wholesale. Credential verification happens separately,
// before Login is called; Login itself always succeeds barring I/O errors.
func (s *Store) Login(username string) (Session, error) {
	now := s.now()
	expiresAt := now.Add(TTL)

	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenSecret)
	if err != nil {
		return Session{}, fmt.Errorf("signing session token: %w", err)
	}

	sess := Session{
		Token:     token,
		ExpiresAt: expiresAt.UnixMilli(),
		Username:  username,
	}
	if err := s.save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Logout clears the stored session. Clearing an absent session is not an error.
func (s *Store) Logout() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// CheckAuth reports whether the stored session is valid: a token is present
// and the expiry is still in the future. An expired session is cleared as a
// side effect. Unreadable or malformed session files count as no session.
func (s *Store) CheckAuth() bool {
	sess, ok := s.load()
	if !ok {
		return false
	}

	if s.now().UnixMilli() >= sess.ExpiresAt {
		// Observed expiry destroys the session.
		if err := s.Logout(); err != nil {
			fmt.Printf("warning: clearing expired session: %v\n", err)
		}
		return false
	}
	return true
}

// Current returns a snapshot of the stored session and whether it is valid.
func (s *Store) Current() (Session, bool) {
	if !s.CheckAuth() {
		return Session{}, false
	}
	sess, ok := s.load()
	return sess, ok
}

// load reads the session file. Returns false when no complete session exists.
func (s *Store) load() (Session, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" || sess.ExpiresAt == 0 {
		return Session{}, false
	}
	return sess, true
}

// save writes the session file, creating the config directory as needed.
func (s *Store) save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
