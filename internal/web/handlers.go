package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tuyishime/visitdesk/internal/client"
	"github.com/tuyishime/visitdesk/internal/report"
	"github.com/tuyishime/visitdesk/internal/visitor"
)

// handleLanding renders the kiosk entry page. Unknown paths fall through
// to "/" as a redirect rather than a 404, matching the route table the
// receptionists know.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "landing.html", nil)
}

type registerData struct {
	Draft       visitor.Registration
	FieldErrors visitor.FieldErrors
	Error       string
	Success     bool
	VisitDate   string
	ArrivalTime string
}

// handleRegister renders the public registration form and processes
// submissions. The visit date and arrival time are stamped server-side at
// submission, in the office timezone, so a check-in cannot be back-dated.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	visitDate, arrivalTime := visitor.Stamp(time.Now())

	if r.Method != http.MethodPost {
		s.render(w, "register.html", registerData{
			VisitDate:   visitDate,
			ArrivalTime: arrivalTime,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	draft := visitor.Registration{
		Names:             strings.TrimSpace(r.FormValue("names")),
		IDNumber:          strings.TrimSpace(r.FormValue("idNumber")),
		Phone:             visitor.NormalizePhone(r.FormValue("phone")),
		Purpose:           strings.TrimSpace(r.FormValue("purpose")),
		DepartmentToVisit: r.FormValue("departmentToVisit"),
		VisitDate:         visitDate,
		ArrivalTime:       arrivalTime,
	}

	data := registerData{Draft: draft, VisitDate: visitDate, ArrivalTime: arrivalTime}

	if err := draft.Validate(); err != nil {
		var fieldErrs visitor.FieldErrors
		if errors.As(err, &fieldErrs) {
			data.FieldErrors = fieldErrs
		} else {
			data.Error = err.Error()
		}
		s.render(w, "register.html", data)
		return
	}

	if _, err := s.api.RegisterVisitor(draft); err != nil {
		data.Error = userMessage(err)
		s.render(w, "register.html", data)
		return
	}

	// Fresh draft plus confirmation; the page returns to the landing
	// view on its own after two seconds.
	s.render(w, "register.html", registerData{
		Success:     true,
		VisitDate:   visitDate,
		ArrivalTime: arrivalTime,
	})
}

type dashboardData struct {
	Username  string
	Visitors  []*visitor.Visitor
	Period    report.Period
	Periods   []report.Period
	Date      string
	Search    string
	Error     string
	Notice    string
	ExportURL string
}

// filterFromQuery derives the dashboard filter from query parameters.
// A period button click wins over whatever date the form still carries
// from a previous pick; a date submitted without a period narrows the view
// to that single day. The second return reports whether an explicit date
// took effect.
func filterFromQuery(r *http.Request, now time.Time) (report.FilterState, bool) {
	q := r.URL.Query()

	period := report.Period(q.Get("period"))
	periodChosen := period.IsValid()
	if !periodChosen {
		period = report.PeriodDay
	}

	anchor := report.DefaultAnchor(period, now)
	dateApplied := false
	if dateParam := q.Get("date"); dateParam != "" && !periodChosen {
		if picked, err := time.ParseInLocation("2006-01-02", dateParam, visitor.Location()); err == nil {
			anchor = picked
			dateApplied = true
		}
	}

	return report.FilterState{
		Period: period,
		Anchor: anchor,
		Search: q.Get("search"),
	}, dateApplied
}

// handleDashboard renders the receptionist view: the visitor cache from the
// records API, narrowed by period, explicit date, and name search.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	username, err := s.sessions.Validate(r)
	if err != nil {
		http.Redirect(w, r, "/login?next=%2Fdashboard", http.StatusSeeOther)
		return
	}

	state, dateApplied := filterFromQuery(r, time.Now().In(visitor.Location()))

	data := dashboardData{
		Username:  username,
		Period:    state.Period,
		Periods:   report.Periods,
		Search:    state.Search,
		Notice:    bannerText(r.URL.Query().Get("notice")),
		Error:     bannerText(r.URL.Query().Get("error")),
		ExportURL: exportURL(r),
	}
	if data.Error != "" {
		// Banners are mutually exclusive; an error wins.
		data.Notice = ""
	}
	if dateApplied {
		data.Date = state.Anchor.Format("2006-01-02")
	}

	visitors, err := s.api.ListVisitors()
	if err != nil {
		data.Error = userMessage(err)
		s.render(w, "dashboard.html", data)
		return
	}

	data.Visitors = report.Apply(visitors, state)
	s.render(w, "dashboard.html", data)
}

// handleExport streams the filtered visitor list as a spreadsheet download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	state, _ := filterFromQuery(r, time.Now().In(visitor.Location()))

	visitors, err := s.api.ListVisitors()
	if err != nil {
		http.Error(w, userMessage(err), http.StatusBadGateway)
		return
	}

	visible := report.Apply(visitors, state)

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(state.Period)))

	if err := report.WriteXLSX(w, visible); err != nil {
		// Headers are already out; log and give up on this response.
		fmt.Printf("warning: writing export: %v\n", err)
	}
}

// handleVisitorRoute dispatches /visitors/{id}/... actions.
func (s *Server) handleVisitorRoute(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/visitors/")
	idPart, action, _ := strings.Cut(rest, "/")

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	switch {
	case action == "departure" && r.Method == http.MethodPost:
		s.handleDeparture(w, r, id)
	case action == "edit" && r.Method == http.MethodGet:
		s.handleEditForm(w, r, id)
	case action == "" && r.Method == http.MethodPost:
		s.handleEditSubmit(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// handleDeparture records a visitor's departure and returns to the
// dashboard. Departure is one-way: the API sets the time once and this
// client never clears it.
func (s *Server) handleDeparture(w http.ResponseWriter, r *http.Request, id int64) {
	if _, err := s.api.RecordDeparture(id); err != nil {
		redirectDashboard(w, r, "", errorKey(err))
		return
	}
	redirectDashboard(w, r, "departed", "")
}

type editData struct {
	Visitor     *visitor.Visitor
	Departments []visitor.Department
	Error       string
}

// handleEditForm renders the edit page for one visitor, located through
// the cached list endpoint.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request, id int64) {
	visitors, err := s.api.ListVisitors()
	if err != nil {
		redirectDashboard(w, r, "", errorKey(err))
		return
	}

	for _, v := range visitors {
		if v.ID == id {
			s.render(w, "edit.html", editData{Visitor: v, Departments: visitor.Departments})
			return
		}
	}
	http.NotFound(w, r)
}

// handleEditSubmit applies the edited fields through the records API.
// Only the fields the form carries are sent; departure is untouchable here.
func (s *Server) handleEditSubmit(w http.ResponseWriter, r *http.Request, id int64) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	changes := map[string]string{}
	for _, field := range []string{"names", "idNumber", "phone", "purpose", "departmentToVisit"} {
		if v := strings.TrimSpace(r.FormValue(field)); v != "" {
			changes[field] = v
		}
	}
	if phone, ok := changes["phone"]; ok {
		changes["phone"] = visitor.NormalizePhone(phone)
	}

	if _, err := s.api.UpdateVisitor(id, changes); err != nil {
		redirectDashboard(w, r, "", errorKey(err))
		return
	}
	redirectDashboard(w, r, "updated", "")
}

// banners maps the message keys carried across dashboard redirects onto
// their display copy. Keys outside this table render nothing, so a crafted
// URL cannot put arbitrary text in a banner.
var banners = map[string]string{
	"departed":    "Departure recorded",
	"updated":     "Visitor updated",
	"unreachable": "Could not reach the visitor service. Check your connection and try again.",
	"rejected":    "The visitor service rejected the change. Refresh and try again.",
}

// bannerText resolves a banner key to its copy, or "" for unknown keys.
func bannerText(key string) string {
	return banners[key]
}

// errorKey maps a client error onto the banner key used across a redirect.
func errorKey(err error) string {
	if errors.Is(err, client.ErrNetwork) {
		return "unreachable"
	}
	return "rejected"
}

// redirectDashboard sends the user back to the dashboard, preserving the
// active filter query and attaching a transient notice or error banner key.
func redirectDashboard(w http.ResponseWriter, r *http.Request, notice, errKey string) {
	q := r.URL.Query()
	q.Del("notice")
	q.Del("error")
	if notice != "" {
		q.Set("notice", notice)
	}
	if errKey != "" {
		q.Set("error", errKey)
	}

	target := "/dashboard"
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// exportURL mirrors the current filter query onto the export endpoint.
func exportURL(r *http.Request) string {
	q := r.URL.Query()
	q.Del("notice")
	q.Del("error")
	if encoded := q.Encode(); encoded != "" {
		return "/dashboard/export?" + encoded
	}
	return "/dashboard/export"
}

// userMessage maps a client error onto the banner text shown to the user.
func userMessage(err error) string {
	if errors.Is(err, client.ErrNetwork) {
		return "Could not reach the visitor service. Check your connection and try again."
	}
	var srvErr *client.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Error()
	}
	return err.Error()
}
