package holiday

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/username/shift-roster/pkg/dateutil"
)

// ErrDuplicateHoliday is returned when a holiday already exists on the
// requested date; at most one holiday per date is allowed
var ErrDuplicateHoliday = errors.New("holiday already exists on this date")

// Holiday represents a named calendar date
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// Registry holds holidays sorted ascending by date so upcoming queries
// stay cheap
type Registry struct {
	holidays []Holiday
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a holiday. The registry is left unchanged when a
// holiday already exists on that date.
func (r *Registry) Add(date time.Time, name string) error {
	date = normalize(date)
	idx := r.search(date)
	if idx < len(r.holidays) && dateutil.IsSameDay(r.holidays[idx].Date, date) {
		return fmt.Errorf("%w: %s", ErrDuplicateHoliday, date.Format("2006-01-02"))
	}

	r.holidays = append(r.holidays, Holiday{})
	copy(r.holidays[idx+1:], r.holidays[idx:])
	r.holidays[idx] = Holiday{Date: date, Name: name}
	return nil
}

// Remove deletes the holiday on the given date and returns it, or nil
// when none existed. Idempotent.
func (r *Registry) Remove(date time.Time) *Holiday {
	date = normalize(date)
	idx := r.search(date)
	if idx >= len(r.holidays) || !dateutil.IsSameDay(r.holidays[idx].Date, date) {
		return nil
	}

	removed := r.holidays[idx]
	r.holidays = append(r.holidays[:idx], r.holidays[idx+1:]...)
	return &removed
}

// IsHoliday reports whether a holiday exists on the given date
func (r *Registry) IsHoliday(date time.Time) bool {
	_, ok := r.NameFor(date)
	return ok
}

// NameFor returns the holiday name for the given date, if any
func (r *Registry) NameFor(date time.Time) (string, bool) {
	date = normalize(date)
	idx := r.search(date)
	if idx < len(r.holidays) && dateutil.IsSameDay(r.holidays[idx].Date, date) {
		return r.holidays[idx].Name, true
	}
	return "", false
}

// ListFrom returns holidays on or after the given date, ascending
func (r *Registry) ListFrom(date time.Time) []Holiday {
	idx := r.search(normalize(date))
	out := make([]Holiday, len(r.holidays)-idx)
	copy(out, r.holidays[idx:])
	return out
}

// All returns every holiday, ascending by date
func (r *Registry) All() []Holiday {
	out := make([]Holiday, len(r.holidays))
	copy(out, r.holidays)
	return out
}

// Len returns the number of registered holidays
func (r *Registry) Len() int {
	return len(r.holidays)
}

// search returns the insertion index for the given date
func (r *Registry) search(date time.Time) int {
	return sort.Search(len(r.holidays), func(i int) bool {
		return !r.holidays[i].Date.Before(date)
	})
}

// normalize pins a date to UTC midnight so lookups are location-independent
func normalize(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
