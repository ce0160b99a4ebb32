// Package report computes the visible visitor list for the dashboard and
// exports it as a spreadsheet.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

// Period is the dashboard filter window size.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods is the set of selectable periods, in display order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// IsValid checks if a period is recognized.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// FilterState holds the user's dashboard filter choices. It is derived
// per render, never persisted.
type FilterState struct {
	Period Period
	Anchor time.Time // any instant inside the desired window
	Search string
}

// Window returns the inclusive [start, end] bounds of the period containing
// anchor. Days run midnight to 23:59:59.999; weeks start on Sunday; months
// and years follow the calendar.
func Window(period Period, anchor time.Time) (start, end time.Time) {
	loc := anchor.Location()
	y, m, d := anchor.Date()

	switch period {
	case PeriodWeek:
		sunday := d - int(anchor.Weekday())
		start = time.Date(y, m, sunday, 0, 0, 0, 0, loc)
		end = dayEnd(start.AddDate(0, 0, 6))
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = dayEnd(start.AddDate(0, 1, -1))
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = dayEnd(time.Date(y, time.December, 31, 0, 0, 0, 0, loc))
	default: // day
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = dayEnd(start)
	}

	return start, end
}

// dayEnd returns 23:59:59.999 on the same calendar day as t.
func dayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DefaultAnchor returns the canonical anchor for a freshly selected period:
// today for day, the start of the current week for week, the first of the
// current month for month, January 1st for year.
func DefaultAnchor(period Period, now time.Time) time.Time {
	start, _ := Window(period, now)
	return start
}

// Apply filters the cached visitor list down to the visible subset and
// orders it chronologically. The input slice is not modified.
//
// Visitors are kept when their visit date falls inside the period window
// and, when a search term is set, their name contains the term
// case-insensitively. The sort is stable: visitors with the same visit
// moment keep their original relative order, and entries whose date or
// time cannot be parsed sort after well-formed ones.
func Apply(visitors []*visitor.Visitor, state FilterState) []*visitor.Visitor {
	start, end := Window(state.Period, state.Anchor)
	term := strings.ToLower(strings.TrimSpace(state.Search))
	loc := state.Anchor.Location()

	type entry struct {
		v      *visitor.Visitor
		moment time.Time
		ok     bool
	}

	var visible []entry
	for _, v := range visitors {
		visitDate, err := time.ParseInLocation("2006-01-02", v.VisitDate, loc)
		if err != nil {
			continue
		}
		if visitDate.Before(start) || visitDate.After(end) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(v.Names), term) {
			continue
		}

		moment, err := v.VisitMoment(loc)
		visible = append(visible, entry{v: v, moment: moment, ok: err == nil})
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.moment.Before(b.moment)
	})

	out := make([]*visitor.Visitor, len(visible))
	for i, e := range visible {
		out[i] = e.v
	}
	return out
}
