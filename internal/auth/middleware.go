package auth

import (
	"net/http"
	"net/url"
	"strings"
)

// RequireAuth is middleware that guards the receptionist pages. Protected
// paths need a valid session or are redirected to the login page carrying
// the originating path, so login can return the user there. Everything
// else (landing, registration, login, static assets) passes through.
//
// The check runs on every request; there is no caching beyond what the
// session store itself does.
func RequireAuth(sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtectedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if _, err := sessions.Validate(r); err != nil {
			http.Redirect(w, r, loginURL(r.URL.Path), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loginURL builds the login redirect target, preserving where the user
// was headed.
func loginURL(from string) string {
	if from == "" || from == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(from)
}

// isProtectedPath reports whether a path requires a receptionist session.
// The dashboard and every visitor mutation go through here; registration
// stays public so walk-ins can sign themselves in.
func isProtectedPath(path string) bool {
	if path == "/dashboard" || strings.HasPrefix(path, "/dashboard/") {
		return true
	}
	return strings.HasPrefix(path, "/visitors/")
}
