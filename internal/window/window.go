package window

import (
	"fmt"
	"time"
)

// Mode selects how the scan window is derived from the current time.
type Mode int

const (
	ModeDays Mode = iota
	ModeToday
	ModeMonth
	ModeLastMonth
)

// DefaultDays is the look-back used when no window flag is given.
const DefaultDays = 7

const secondsPerDay = 24 * 60 * 60

// String returns the flag-style name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDays:
		return "days"
	case ModeToday:
		return "today"
	case ModeMonth:
		return "month"
	case ModeLastMonth:
		return "last-month"
	default:
		return "unknown"
	}
}

// Window is an absolute time range. Since is inclusive, Until is exclusive
// and a nil Until leaves the range open towards now.
type Window struct {
	Mode  Mode
	Days  int
	Since time.Time
	Until *time.Time
}

// Compute converts a mode into an absolute window relative to now.
// All calendar arithmetic happens in now's location.
func Compute(mode Mode, days int, now time.Time) (Window, error) {
	loc := now.Location()
	w := Window{Mode: mode, Days: days}

	switch mode {
	case ModeDays:
		if days < 0 {
			return Window{}, fmt.Errorf("days must not be negative (got %d)", days)
		}
		// Look-backs reaching past the epoch saturate there.
		if int64(days) > now.Unix()/secondsPerDay {
			w.Since = time.Unix(0, 0).In(loc)
		} else {
			w.Since = time.Unix(now.Unix()-int64(days)*secondsPerDay, 0).In(loc)
		}
	case ModeToday:
		since, err := localMidnight(now.Year(), now.Month(), now.Day(), loc)
		if err != nil {
			return Window{}, err
		}
		w.Since = since
	case ModeMonth:
		since, err := localMidnight(now.Year(), now.Month(), 1, loc)
		if err != nil {
			return Window{}, err
		}
		w.Since = since
	case ModeLastMonth:
		year, month := now.Year(), now.Month()-1
		if month < time.January {
			month = time.December
			year--
		}
		since, err := localMidnight(year, month, 1, loc)
		if err != nil {
			return Window{}, err
		}
		until, err := localMidnight(now.Year(), now.Month(), 1, loc)
		if err != nil {
			return Window{}, err
		}
		w.Since = since
		w.Until = &until
	default:
		return Window{}, fmt.Errorf("unknown window mode %d", int(mode))
	}

	if err := w.validate(now); err != nil {
		return Window{}, err
	}
	return w, nil
}

// localMidnight returns the first instant of the given local date. When
// midnight falls into a daylight-saving gap the day starts at the
// transition, so the result never lands on the previous calendar day.
func localMidnight(year int, month time.Month, day int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() == year && t.Month() == month && t.Day() == day {
		return t, nil
	}

	_, end := t.ZoneBounds()
	if end.IsZero() || end.Year() != year || end.Month() != month || end.Day() != day {
		return time.Time{}, fmt.Errorf("failed to resolve local midnight of %04d-%02d-%02d in %s",
			year, int(month), day, loc)
	}
	return end, nil
}

func (w Window) validate(now time.Time) error {
	if w.Since.After(now) {
		return fmt.Errorf("failed to resolve local start of %s: %s is after now (%s)",
			w.Phrase(), w.Since.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	if w.Until != nil && !w.Since.Before(*w.Until) {
		return fmt.Errorf("failed to resolve %s: start %s is not before end %s",
			w.Phrase(), w.Since.Format(time.RFC3339), w.Until.Format(time.RFC3339))
	}
	return nil
}

// Contains reports whether t lies within [Since, Until).
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Since) {
		return false
	}
	if w.Until != nil && !t.Before(*w.Until) {
		return false
	}
	return true
}

// Description is the short label used in the summary line, e.g. "last 7 days".
func (w Window) Description() string {
	switch w.Mode {
	case ModeToday:
		return "today"
	case ModeMonth:
		return "this month"
	case ModeLastMonth:
		return "last month"
	default:
		if w.Days == 1 {
			return "last 1 day"
		}
		return fmt.Sprintf("last %d days", w.Days)
	}
}

// Phrase is Description in a form that reads inside a sentence,
// e.g. "the last 7 days".
func (w Window) Phrase() string {
	if w.Mode == ModeDays {
		return "the " + w.Description()
	}
	return w.Description()
}
