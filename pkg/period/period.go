// Package period defines the reporting windows used to filter statistics:
// a fixed, cyclable set of presets plus a custom inclusive date range.
package period

import (
	"fmt"
	"time"
)

// Period is one reporting window. The zero value is Today.
type Period int

const (
	Today Period = iota
	Yesterday
	ThisWeek
	LastWeek
	ThisMonth
	LastMonth
	AllTime
	Custom
)

// ordering is the fixed cycle ring. Next/Prev wrap at both ends.
var ordering = [...]Period{
	Today, Yesterday, ThisWeek, LastWeek, ThisMonth, LastMonth, AllTime, Custom,
}

// Next returns the period one step forward in the cycle, wrapping from
// Custom back to Today.
func (p Period) Next() Period {
	for i, q := range ordering {
		if q == p {
			return ordering[(i+1)%len(ordering)]
		}
	}
	return Today
}

// Prev returns the period one step backward in the cycle, wrapping from
// Today to Custom.
func (p Period) Prev() Period {
	for i, q := range ordering {
		if q == p {
			return ordering[(i-1+len(ordering))%len(ordering)]
		}
	}
	return Today
}

// String returns the display label used in tab footers and status lines.
func (p Period) String() string {
	switch p {
	case Today:
		return "Today"
	case Yesterday:
		return "Yesterday"
	case ThisWeek:
		return "This Week"
	case LastWeek:
		return "Last Week"
	case ThisMonth:
		return "This Month"
	case LastMonth:
		return "Last Month"
	case AllTime:
		return "All Time"
	case Custom:
		return "Custom"
	}
	return "Unknown"
}

// DateRange is an inclusive [Start, End] calendar range. Both bounds are
// dates (midnight-normalized); Start <= End holds for every range built
// through Normalized.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Normalized returns the range with Start and End swapped if needed so
// that Start <= End. Inverted input is silently corrected, never rejected.
func (r DateRange) Normalized() DateRange {
	if r.End.Before(r.Start) {
		return DateRange{Start: r.End, End: r.Start}
	}
	return r
}

// Contains reports whether d falls inside the inclusive range.
func (r DateRange) Contains(d time.Time) bool {
	d = Midnight(d)
	return !d.Before(Midnight(r.Start)) && !d.After(Midnight(r.End))
}

// String renders the range as "2026-01-03..2026-01-05".
func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
}

// Midnight truncates t to its calendar date in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FilterString produces the wire filter the statistics APIs accept. The
// custom range is only emitted once confirmed; a Custom period without a
// range falls back to "all" so a half-finished picker never produces a
// bogus query.
func (p Period) FilterString(custom *DateRange) string {
	switch p {
	case Today:
		return "today"
	case Yesterday:
		return "yesterday"
	case ThisWeek:
		return "week"
	case LastWeek:
		return "last-week"
	case ThisMonth:
		return "month"
	case LastMonth:
		return "last-month"
	case AllTime:
		return "all"
	case Custom:
		if custom != nil {
			return fmt.Sprintf("custom:%s:%s",
				custom.Start.Format("2006-01-02"),
				custom.End.Format("2006-01-02"))
		}
		return "all"
	}
	return "all"
}

// Bounds resolves the period to a concrete date range relative to now.
// AllTime and an unconfirmed Custom return ok=false: they have no finite
// bounds to filter by.
func (p Period) Bounds(now time.Time, custom *DateRange) (DateRange, bool) {
	today := Midnight(now)
	switch p {
	case Today:
		return DateRange{Start: today, End: today}, true
	case Yesterday:
		y := today.AddDate(0, 0, -1)
		return DateRange{Start: y, End: y}, true
	case ThisWeek:
		start := startOfWeek(today)
		return DateRange{Start: start, End: today}, true
	case LastWeek:
		end := startOfWeek(today).AddDate(0, 0, -1)
		return DateRange{Start: end.AddDate(0, 0, -6), End: end}, true
	case ThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateRange{Start: start, End: today}, true
	case LastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := firstOfThis.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		return DateRange{Start: start, End: end}, true
	case Custom:
		if custom != nil {
			return custom.Normalized(), true
		}
	}
	return DateRange{}, false
}

// startOfWeek returns the Monday on or before d.
func startOfWeek(d time.Time) time.Time {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	return d.AddDate(0, 0, -(wd - 1))
}
