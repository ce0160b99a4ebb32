package auth

import "crypto/subtle"

// Verifier checks a principal's credentials before a session is granted.
// The guard and handlers depend only on this interface, so the fixed
// lookup table below can be swapped for a real authority later.
type Verifier interface {
	Verify(username, password string) bool
}

// StaticVerifier verifies against a fixed in-memory credential table.
type StaticVerifier struct {
	credentials map[string]string
}

// DefaultCredentials is the receptionist account seed.
var DefaultCredentials = map[string]string{
	"moh-admin": "admin@2024",
}

// NewStaticVerifier creates a verifier over the given username/password table.
// A nil table uses DefaultCredentials.
func NewStaticVerifier(credentials map[string]string) *StaticVerifier {
	if credentials == nil {
		credentials = DefaultCredentials
	}
	return &StaticVerifier{credentials: credentials}
}

// Verify reports whether the username/password pair matches the table.
func (v *StaticVerifier) Verify(username, password string) bool {
	want, ok := v.credentials[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
}
