// Package visitor provides the visitor domain model and validation.
package visitor

import (
	"fmt"
	"strings"
	"time"
)

// Department is an office a visitor may be signed in for.
type Department string

const (
	HumanResources     Department = "Human Resources"
	WorkforceDev       Department = "Health Workforce Development"
	PlanningFinancing  Department = "Planning and Health Financing Department"
	PermanentSecretary Department = "Permanent Secretary Office"
	CorporateService   Department = "Corporate Service Department"
	ClinicalService    Department = "Clinical Service Department"
	MinistersOffice    Department = "Minister's Office"
	Digitization       Department = "Digitization"
)

// Departments is the set of departments a visitor may select, in display order.
var Departments = []Department{
	HumanResources,
	WorkforceDev,
	PlanningFinancing,
	PermanentSecretary,
	CorporateService,
	ClinicalService,
	MinistersOffice,
	Digitization,
}

// IsValid checks if a department is recognized.
func (d Department) IsValid() bool {
	for _, v := range Departments {
		if d == v {
			return true
		}
	}
	return false
}

// Visitor represents one sign-in entry, from arrival to optional departure.
// A nil DepartureTime means the visitor is still on the premises.
type Visitor struct {
	ID                int64   `json:"id"`
	Names             string  `json:"names"`
	IDNumber          string  `json:"idNumber"`
	Phone             string  `json:"phone"`
	Purpose           string  `json:"purpose"`
	DepartmentToVisit string  `json:"departmentToVisit"`
	VisitDate         string  `json:"visitDate"`     // YYYY-MM-DD
	ArrivalTime       string  `json:"arrivalTime"`   // HH:MM
	DepartureTime     *string `json:"departureTime"` // HH:MM, nil until departure
}

// Departed reports whether a departure has been recorded.
func (v *Visitor) Departed() bool {
	return v.DepartureTime != nil && *v.DepartureTime != ""
}

// DepartureLabel returns the departure time for display, or "Not departed".
func (v *Visitor) DepartureLabel() string {
	if v.Departed() {
		return *v.DepartureTime
	}
	return "Not departed"
}

// VisitMoment returns the combined visit date and arrival time in loc.
// Used for chronological ordering of visits.
func (v *Visitor) VisitMoment(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02T15:04", v.VisitDate+"T"+v.ArrivalTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing visit moment: %w", err)
	}
	return t, nil
}

// Registration is the payload for signing in a new visitor.
// The server assigns the ID; departure is always absent at registration.
type Registration struct {
	Names             string `json:"names"`
	IDNumber          string `json:"idNumber"`
	Phone             string `json:"phone"`
	Purpose           string `json:"purpose"`
	DepartmentToVisit string `json:"departmentToVisit"`
	VisitDate         string `json:"visitDate"`
	ArrivalTime       string `json:"arrivalTime"`
}

const idNumberLen = 16

// MaxPhoneDigits is the longest phone number accepted on the form.
const MaxPhoneDigits = 10

// NormalizePhone strips non-digit characters and truncates to MaxPhoneDigits,
// matching what the form does as the visitor types.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == MaxPhoneDigits {
			break
		}
	}
	return b.String()
}

// allDigits reports whether s is non-empty and contains only ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks a registration before it is sent to the server.
// Field errors are returned as a FieldErrors map keyed by JSON field name.
func (r *Registration) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(r.Names) == "" {
		errs["names"] = "name is required"
	}
	if !allDigits(r.IDNumber) || len(r.IDNumber) != idNumberLen {
		errs["idNumber"] = fmt.Sprintf("ID number must be exactly %d digits", idNumberLen)
	}
	if !allDigits(r.Phone) || len(r.Phone) != MaxPhoneDigits {
		errs["phone"] = fmt.Sprintf("phone must be exactly %d digits", MaxPhoneDigits)
	}
	if strings.TrimSpace(r.Purpose) == "" {
		errs["purpose"] = "purpose is required"
	}
	if !Department(r.DepartmentToVisit).IsValid() {
		errs["departmentToVisit"] = "select a department from the list"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FieldErrors maps field names to validation messages.
type FieldErrors map[string]string

// Error implements the error interface.
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range []string{"names", "idNumber", "phone", "purpose", "departmentToVisit"} {
		if msg, ok := e[f]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}
