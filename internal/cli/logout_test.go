package cli

import "testing"

func TestLogoutClearsSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := sessionStore()
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	if _, err := store.Login("moh-admin"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !store.CheckAuth() {
		t.Fatal("expected a valid session before logout")
	}

	if _, err := executeCommand("logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if store.CheckAuth() {
		t.Error("expected session cleared after logout")
	}
}

func TestLogoutWhenNotLoggedIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// No session file, logout should still succeed
	if _, err := executeCommand("logout"); err != nil {
		t.Fatalf("logout with no session: %v", err)
	}
}
