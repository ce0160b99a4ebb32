package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestLoginPageRendersForm(t *testing.T) {
	srv := testServer(t, emptyAPI())

	r := httptest.NewRequest("GET", "/login", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `action="/login"`) {
		t.Error("expected login form action")
	}
	if !strings.Contains(body, `name="password"`) {
		t.Error("expected password field")
	}
}

func TestLoginWithValidCredentials(t *testing.T) {
	srv := testServer(t, emptyAPI())

	cookie := loginAs(t, srv, "moh-admin", "admin@2024")
	if cookie.Value == "" {
		t.Error("expected a session cookie value")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
}

func TestLoginWithInvalidCredentials(t *testing.T) {
	srv := testServer(t, emptyAPI())

	form := url.Values{"username": {"moh-admin"}, "password": {"wrong"}}
	r := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid username or password") {
		t.Error("expected credential error")
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "visitdesk_session" && c.Value != "" {
			t.Error("no session should be created on bad credentials")
		}
	}
}

func TestLoginHonorsNextParam(t *testing.T) {
	srv := testServer(t, emptyAPI())

	form := url.Values{
		"username": {"moh-admin"},
		"password": {"admin@2024"},
		"next":     {"/dashboard?period=week"},
	}
	r := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/dashboard?period=week" {
		t.Errorf("location = %q", got)
	}
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	srv := testServer(t, emptyAPI())

	form := url.Values{
		"username": {"moh-admin"},
		"password": {"admin@2024"},
		"next":     {"https://evil.example/phish"},
	}
	r := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if got := w.Header().Get("Location"); got != "/dashboard" {
		t.Errorf("location = %q, want /dashboard", got)
	}
}

func TestLoginRedirectsWhenAlreadySignedIn(t *testing.T) {
	srv := testServer(t, emptyAPI())
	cookie := loginAs(t, srv, "moh-admin", "admin@2024")

	r := httptest.NewRequest("GET", "/login", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/dashboard" {
		t.Errorf("location = %q", got)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	srv := testServer(t, emptyAPI())
	cookie := loginAs(t, srv, "moh-admin", "admin@2024")

	r := httptest.NewRequest("GET", "/logout", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login" {
		t.Errorf("location = %q, want /login", got)
	}

	// The old cookie no longer opens the dashboard
	r2 := httptest.NewRequest("GET", "/dashboard", nil)
	r2.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	srv.ServeHTTP(w2, r2)

	if w2.Code != http.StatusSeeOther {
		t.Errorf("dashboard after logout: status = %d, want redirect", w2.Code)
	}
}
