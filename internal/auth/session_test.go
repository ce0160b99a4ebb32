package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tuyishime/visitdesk/internal/db"
)

// testSessionStore creates a session store over a temporary database.
func testSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return NewSessionStore(d)
}

// sessionCookie extracts the session cookie from a recorded response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("expected cookie named %q", cookieName)
	return nil
}

func TestSessionCreateAndValidate(t *testing.T) {
	store := testSessionStore(t)

	w := httptest.NewRecorder()
	if err := store.Create(w, "moh-admin"); err != nil {
		t.Fatalf("create: %v", err)
	}

	cookie := sessionCookie(t, w)

	r := httptest.NewRequest("GET", "/dashboard", nil)
	r.AddCookie(cookie)

	username, err := store.Validate(r)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if username != "moh-admin" {
		t.Errorf("username = %q, want %q", username, "moh-admin")
	}
}

func TestSessionValidateNoCookie(t *testing.T) {
	store := testSessionStore(t)

	r := httptest.NewRequest("GET", "/dashboard", nil)
	if _, err := store.Validate(r); err == nil {
		t.Fatal("expected error with no cookie")
	}
}

func TestSessionValidateInvalidCookie(t *testing.T) {
	store := testSessionStore(t)

	r := httptest.NewRequest("GET", "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "bogus-session-id"})

	if _, err := store.Validate(r); err == nil {
		t.Fatal("expected error for invalid session")
	}
}

func TestSessionExpiredIsDeleted(t *testing.T) {
	store := testSessionStore(t)

	w := httptest.NewRecorder()
	if err := store.Create(w, "moh-admin"); err != nil {
		t.Fatalf("create: %v", err)
	}
	cookie := sessionCookie(t, w)

	// Backdate the expiry past the deadline
	if _, err := store.db.Exec(
		"UPDATE sessions SET expires_at = ? WHERE id = ?",
		time.Now().Add(-time.Minute), cookie.Value,
	); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	r := httptest.NewRequest("GET", "/dashboard", nil)
	r.AddCookie(cookie)
	if _, err := store.Validate(r); err == nil {
		t.Fatal("expected error for expired session")
	}

	// The expired row is gone
	var count int
	if err := store.db.QueryRow(
		"SELECT COUNT(*) FROM sessions WHERE id = ?", cookie.Value,
	).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Error("expired session row should have been deleted")
	}
}

func TestSessionDestroy(t *testing.T) {
	store := testSessionStore(t)

	w := httptest.NewRecorder()
	if err := store.Create(w, "moh-admin"); err != nil {
		t.Fatalf("create: %v", err)
	}
	cookie := sessionCookie(t, w)

	r := httptest.NewRequest("GET", "/logout", nil)
	r.AddCookie(cookie)

	w2 := httptest.NewRecorder()
	if err := store.Destroy(w2, r); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	// Cookie is cleared
	cleared := sessionCookie(t, w2)
	if cleared.Value != "" || cleared.MaxAge != -1 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}

	// Session no longer validates
	r2 := httptest.NewRequest("GET", "/dashboard", nil)
	r2.AddCookie(cookie)
	if _, err := store.Validate(r2); err == nil {
		t.Fatal("destroyed session should not validate")
	}
}

func TestSessionCleanup(t *testing.T) {
	store := testSessionStore(t)

	w := httptest.NewRecorder()
	if err := store.Create(w, "moh-admin"); err != nil {
		t.Fatalf("create: %v", err)
	}
	cookie := sessionCookie(t, w)

	if _, err := store.db.Exec(
		"UPDATE sessions SET expires_at = ? WHERE id = ?",
		time.Now().Add(-time.Hour), cookie.Value,
	); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := store.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 sessions after cleanup, got %d", count)
	}
}
