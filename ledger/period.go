package ledger

import "time"

// =============================================================================
// PERIOD - Time windows for report filtering
// =============================================================================

// PeriodKind selects the reporting window relative to "now".
type PeriodKind string

const (
	PeriodAll   PeriodKind = "all"
	PeriodDay   PeriodKind = "day"   // today, local calendar day
	PeriodWeek  PeriodKind = "week"  // rolling 7 days ending today, inclusive
	PeriodMonth PeriodKind = "month" // calendar month containing now
)

func (p PeriodKind) Valid() bool {
	switch p {
	case PeriodAll, PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// Period is a half-open window [Start, End). The exclusive end bound
// makes 23:59:59.999 of the last day fall inside and midnight of the
// next day fall outside, with no millisecond arithmetic.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Window computes the period for kind relative to now, using now's
// location for day boundaries. PeriodAll returns ok=false: no bounds.
func Window(kind PeriodKind, now time.Time) (Period, bool) {
	today := startOfDay(now)
	switch kind {
	case PeriodDay:
		return Period{Start: today, End: today.AddDate(0, 0, 1)}, true
	case PeriodWeek:
		return Period{Start: today.AddDate(0, 0, -6), End: today.AddDate(0, 0, 1)}, true
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Period{Start: start, End: start.AddDate(0, 1, 0)}, true
	default:
		return Period{}, false
	}
}

// MonthWindow is the calendar month (year, month) with full day bounds.
func MonthWindow(year int, month time.Month, loc *time.Location) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
