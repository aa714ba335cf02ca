package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/shift-roster/pkg/dateutil"
)

// Period identifies one roster table by year and month
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing the given date
func PeriodOf(date time.Time) Period {
	return Period{Year: date.Year(), Month: date.Month()}
}

// Key returns the period's storage key, "2024-2" for February 2024.
// The month is not zero padded; existing data files use this shape.
func (p Period) Key() string {
	return fmt.Sprintf("%d-%d", p.Year, int(p.Month))
}

// ParsePeriodKey parses a storage key back into a period
func ParsePeriodKey(key string) (Period, error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("invalid period key: %q", key)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period key: %q", key)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid period key: %q", key)
	}

	return Period{Year: year, Month: time.Month(month)}, nil
}

// Previous returns the immediately preceding period
func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Next returns the immediately following period
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Days returns the number of calendar days in the period
func (p Period) Days() int {
	return dateutil.DaysInMonth(p.Year, p.Month)
}

// FirstDay returns the first day of the period as a UTC date
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Date returns the UTC date for the given day number within the period
func (p Period) Date(day int) (time.Time, error) {
	return dateutil.Date(p.Year, p.Month, day)
}

// Before reports whether p starts strictly before other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// String returns a human readable form, "February 2024"
func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}
