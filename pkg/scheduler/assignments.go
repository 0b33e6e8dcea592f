package scheduler

import (
	"fmt"
	"time"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

const (
	// DateLayout is the key format of the assignment map
	DateLayout = "2006-01-02"

	// MaxRangeDays bounds end-start of a bulk assignment
	MaxRangeDays = 40

	// DefaultRangeDays is added to the start when no end date is given
	DefaultRangeDays = 6
)

// FormatDateKey renders the calendar date of t as a map key
func FormatDateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into a UTC midnight time
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", models.ErrValidation, key)
	}
	return t, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Assignments maps date keys to shift type ids. A missing key means unassigned.
type Assignments struct {
	byDate map[string]string
}

// NewAssignments wraps an existing map, dropping sentinel values
func NewAssignments(m map[string]string) *Assignments {
	a := &Assignments{byDate: make(map[string]string, len(m))}
	for k, v := range m {
		if v != "" {
			a.byDate[k] = v
		}
	}
	return a
}

// Get returns the id assigned to dateKey
func (a *Assignments) Get(dateKey string) (string, bool) {
	id, ok := a.byDate[dateKey]
	return id, ok
}

// Set assigns id to dateKey unconditionally. The sentinel clears the entry.
func (a *Assignments) Set(dateKey, id string) {
	if id == "" {
		a.Clear(dateKey)
		return
	}
	a.byDate[dateKey] = id
}

// Clear removes the assignment for dateKey
func (a *Assignments) Clear(dateKey string) {
	delete(a.byDate, dateKey)
}

// Map returns a copy of the underlying map
func (a *Assignments) Map() map[string]string {
	out := make(map[string]string, len(a.byDate))
	for k, v := range a.byDate {
		out[k] = v
	}
	return out
}

// Len returns the number of assigned dates
func (a *Assignments) Len() int { return len(a.byDate) }

// Rotate advances dateKey one step through order and returns the new id ("" when
// the day became unassigned). An id missing from order restarts at the sentinel.
func (a *Assignments) Rotate(dateKey string, order []string) string {
	if len(order) == 0 {
		return ""
	}
	current := a.byDate[dateKey]
	idx := 0
	for i, id := range order {
		if id == current {
			idx = i
			break
		}
	}
	next := order[(idx+1)%len(order)]
	a.Set(dateKey, next)
	return next
}

// ResolveRange applies the defaulting and bounds rules of a bulk assignment and
// returns the effective end date. A nil end means one calendar week from start.
func ResolveRange(start time.Time, end *time.Time) (time.Time, error) {
	start = dateOnly(start)
	var last time.Time
	if end == nil {
		last = start.AddDate(0, 0, DefaultRangeDays)
	} else {
		last = dateOnly(*end)
	}
	if last.Before(start) {
		return time.Time{}, fmt.Errorf("%w: %s < %s", models.ErrInvalidRange, FormatDateKey(last), FormatDateKey(start))
	}
	if days := daysBetween(start, last); days > MaxRangeDays {
		return time.Time{}, fmt.Errorf("%w: %d days (max %d)", models.ErrRangeTooLong, days, MaxRangeDays)
	}
	return last, nil
}

// AssignRange assigns id to every date in [start, end]. See ResolveRange for end.
func (a *Assignments) AssignRange(start time.Time, end *time.Time, id string) (time.Time, error) {
	last, err := ResolveRange(start, end)
	if err != nil {
		return time.Time{}, err
	}
	for d := dateOnly(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		a.Set(FormatDateKey(d), id)
	}
	return last, nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
