package visitor

import (
	"sync"
	"time"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns the office timezone (Africa/Kigali). Falls back to the
// fixed CAT offset if the tzdata lookup fails.
func Location() *time.Location {
	locOnce.Do(func() {
		var err error
		loc, err = time.LoadLocation("Africa/Kigali")
		if err != nil {
			loc = time.FixedZone("CAT", 2*60*60)
		}
	})
	return loc
}

// Stamp returns the visit date (YYYY-MM-DD) and arrival time (HH:MM) for a
// registration submitted at t, in the office timezone.
func Stamp(t time.Time) (visitDate, arrivalTime string) {
	t = t.In(Location())
	return t.Format("2006-01-02"), t.Format("15:04")
}
