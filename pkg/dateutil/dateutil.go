package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a year/month/day combination does not
// exist in the Gregorian calendar
var ErrInvalidDate = errors.New("invalid date")

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day) in the local timezone
func Today() time.Time {
	return TodayIn(time.Local)
}

// TodayIn returns today's date (start of day) in the given location
func TodayIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Now().In(loc))
}

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap years
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidateDate checks that the day exists within the given month
func ValidateDate(year int, month time.Month, day int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return nil
}

// Date builds a start-of-day time.Time in UTC, validating the
// year/month/day combination first
func Date(year int, month time.Month, day int) (time.Time, error) {
	if err := ValidateDate(year, month, day); err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// WeekdayName returns the abbreviated weekday name ("Mon") for display labeling
func WeekdayName(year int, month time.Month, day int) (string, error) {
	date, err := Date(year, month, day)
	if err != nil {
		return "", err
	}
	return date.Weekday().String()[:3], nil
}

// ParseDate parses a date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
}
