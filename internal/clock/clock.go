package clock

import "time"

// DateLayout is the calendar-day key shared by records, weight logs and
// trend points.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Local reads the wall clock and buckets in Loc (host zone when nil).
type Local struct {
	Loc *time.Location
}

func (c Local) Now() time.Time {
	return time.Now().In(c.Location())
}

func (c Local) Location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

type Fixed struct {
	At  time.Time
	Loc *time.Location
}

func (c Fixed) Now() time.Time {
	return c.At.In(c.Location())
}

func (c Fixed) Location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

func Bucket(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

func Today(c Clock) string {
	return Bucket(c.Now(), c.Location())
}

// Midnight returns the start of t's calendar day in t's own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBack returns n consecutive midnights ending at today's, oldest first.
func DaysBack(today time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := Midnight(today)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.AddDate(0, 0, i-(n-1))
	}
	return out
}

func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, value, loc)
}
