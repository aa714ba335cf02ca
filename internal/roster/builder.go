package roster

import (
	"time"

	"github.com/username/shift-roster/pkg/dateutil"
)

// HolidaySource answers holiday lookups for the overlay. The holiday
// registry implements it.
type HolidaySource interface {
	IsHoliday(date time.Time) bool
	NameFor(date time.Time) (string, bool)
}

// emptyHolidaySource is used when no registry is supplied
type emptyHolidaySource struct{}

func (emptyHolidaySource) IsHoliday(time.Time) bool         { return false }
func (emptyHolidaySource) NameFor(time.Time) (string, bool) { return "", false }

// NoHolidays is a HolidaySource with no entries
var NoHolidays HolidaySource = emptyHolidaySource{}

// ApplyOverlay forces holiday and weekend cells across the table:
// a holiday date sets every row to Holiday, a weekend date sets every
// row that is not Holiday to Off. Other cells are left untouched.
// The overlay is idempotent and must be re-applied whenever the
// period's holidays change.
func ApplyOverlay(t *Table, holidays HolidaySource) {
	if holidays == nil {
		holidays = NoHolidays
	}
	first := t.period.FirstDay()
	for day := 1; day <= t.Days(); day++ {
		date := first.AddDate(0, 0, day-1)
		switch {
		case holidays.IsHoliday(date):
			for _, row := range t.rows {
				row[day-1] = ShiftHoliday
			}
		case dateutil.IsWeekend(date):
			for _, row := range t.rows {
				if row[day-1] != ShiftHoliday {
					row[day-1] = ShiftOff
				}
			}
		}
	}
}

// Generate builds a fresh table for the period: every cell starts at
// the default shift, then the weekend/holiday overlay is applied.
// Deterministic; an empty employee list yields an empty table.
func Generate(period Period, employees []string, def Shift, holidays HolidaySource) *Table {
	t := NewTable(period, employees, def)
	ApplyOverlay(t, holidays)
	return t
}

// CarryForward derives a new period's table from the immediately
// preceding period. Cell values are copied for employees present in
// both tables, for day numbers both months share; everything else gets
// the default shift. The overlay is applied last, so weekends and
// holidays are correct for the new period regardless of what was
// copied.
func CarryForward(prev *Table, period Period, employees []string, def Shift, holidays HolidaySource) *Table {
	t := NewTable(period, employees, def)

	if prev != nil {
		days := t.Days()
		if prev.Days() < days {
			days = prev.Days()
		}
		for emp, row := range t.rows {
			prevRow, ok := prev.rows[emp]
			if !ok {
				continue
			}
			copy(row[:days], prevRow[:days])
		}
	}

	ApplyOverlay(t, holidays)
	return t
}

// Reconcile rewrites a period's table after the employee roster
// changed. Rows for employees present in both the old row set and the
// new list are copied verbatim; new employees get default+overlay
// rows; removed employees are dropped along with their cells for the
// period. The input table is not modified. Idempotent.
func Reconcile(existing *Table, employees []string, def Shift, holidays HolidaySource) *Table {
	t := Generate(existing.period, employees, def, holidays)

	for emp, row := range t.rows {
		oldRow, ok := existing.rows[emp]
		if !ok {
			continue
		}
		copy(row, oldRow)
	}

	return t
}

// RevertHoliday rewrites the column for a removed holiday's date:
// cells still marked Holiday revert to Off on a weekend and to the
// default shift on a weekday. No-op when the date is outside the
// table's period or the registry still holds a holiday on that date.
func RevertHoliday(t *Table, date time.Time, def Shift, holidays HolidaySource) {
	if PeriodOf(date) != t.period {
		return
	}
	if holidays != nil && holidays.IsHoliday(date) {
		return
	}

	revert := def
	if dateutil.IsWeekend(date) {
		revert = ShiftOff
	}

	day := date.Day()
	for _, row := range t.rows {
		if row[day-1] == ShiftHoliday {
			row[day-1] = revert
		}
	}
}
