package web

import (
	"fmt"
	"net/http"
	"strings"
)

type loginData struct {
	Username string
	Next     string
	Error    string
}

// handleLogin renders the receptionist login form and processes
// submissions. Credential checking goes through the Verifier; on success a
// session is created and the user returns to where the guard stopped them.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.FormValue("next"))
	if next == "" {
		next = safeNext(r.URL.Query().Get("next"))
	}

	if r.Method != http.MethodPost {
		// Already signed in? Straight to the dashboard.
		if _, err := s.sessions.Validate(r); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		s.render(w, "login.html", loginData{Next: next})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if !s.verifier.Verify(username, password) {
		s.render(w, "login.html", loginData{
			Username: username,
			Next:     next,
			Error:    "Invalid username or password",
		})
		return
	}

	if err := s.sessions.Create(w, username); err != nil {
		fmt.Printf("Error creating session: %v\n", err)
		s.render(w, "login.html", loginData{
			Username: username,
			Next:     next,
			Error:    "Could not start a session, try again",
		})
		return
	}

	if next == "" {
		next = "/dashboard"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// handleLogout destroys the session and returns to the login page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(w, r); err != nil {
		fmt.Printf("Error destroying session: %v\n", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// safeNext keeps post-login redirects on this site: only rooted paths pass.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
