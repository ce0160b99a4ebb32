// Package web provides the HTTP server and handlers for the visitdesk web UI.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/tuyishime/visitdesk/internal/auth"
	"github.com/tuyishime/visitdesk/internal/client"
	"github.com/tuyishime/visitdesk/internal/logging"
	"github.com/tuyishime/visitdesk/internal/visitor"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the visitor desk HTTP server. It renders the kiosk and
// receptionist pages; all durable visitor data stays behind the remote
// records API.
type Server struct {
	api       *client.Client
	sessions  *auth.SessionStore
	verifier  auth.Verifier
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a web server. The database holds only web sessions;
// apiURL is the base URL of the remote visitor-records service.
func NewServer(db *sql.DB, apiURL string, verifier auth.Verifier) (*Server, error) {
	funcMap := template.FuncMap{
		"departments": func() []visitor.Department { return visitor.Departments },
		"add1":        func(i int) int { return i + 1 },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		api:       client.New(apiURL),
		sessions:  auth.NewSessionStore(db),
		verifier:  verifier,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/", s.handleLanding)
	s.mux.HandleFunc("/register", s.handleRegister)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/logout", s.handleLogout)
	s.mux.HandleFunc("/dashboard", s.handleDashboard)
	s.mux.HandleFunc("/dashboard/export", s.handleExport)
	s.mux.HandleFunc("/visitors/", s.handleVisitorRoute)
	s.mux.HandleFunc("/health", s.handleHealth)

	// Request logging, then the session guard, then the route table.
	s.handler = logging.RequestLogger(auth.RequireAuth(s.sessions, s.mux))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting visitor desk on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}

// render writes a template, falling back to a 500 when execution fails.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering page: %v", err), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		fmt.Printf("warning: writing health response: %v\n", err)
	}
}
