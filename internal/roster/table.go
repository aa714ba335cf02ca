package roster

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. All are recoverable; a failed
// operation leaves the table unmodified.
var (
	ErrInvalidDay      = errors.New("day out of range")
	ErrInvalidShift    = errors.New("invalid shift value")
	ErrUnknownEmployee = errors.New("unknown employee")
	ErrPeriodNotFound  = errors.New("period not found")
)

// Table represents the roster grid for one period: one row per
// employee, one column per calendar day
type Table struct {
	period    Period
	employees []string
	rows      map[string][]Shift
}

// NewTable allocates a table with every cell set to the given fill
// value. An empty employee list yields an empty table.
func NewTable(period Period, employees []string, fill Shift) *Table {
	t := &Table{
		period:    period,
		employees: make([]string, 0, len(employees)),
		rows:      make(map[string][]Shift, len(employees)),
	}
	for _, emp := range employees {
		if _, ok := t.rows[emp]; ok {
			continue
		}
		row := make([]Shift, period.Days())
		for i := range row {
			row[i] = fill
		}
		t.employees = append(t.employees, emp)
		t.rows[emp] = row
	}
	return t
}

// Period returns the period this table covers
func (t *Table) Period() Period {
	return t.period
}

// Days returns the number of day columns
func (t *Table) Days() int {
	return t.period.Days()
}

// Employees returns the ordered row set
func (t *Table) Employees() []string {
	out := make([]string, len(t.employees))
	copy(out, t.employees)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.employees)
}

// Has reports whether the employee has a row in the table
func (t *Table) Has(employee string) bool {
	_, ok := t.rows[employee]
	return ok
}

// Get returns the shift for the given employee and day
func (t *Table) Get(employee string, day int) (Shift, error) {
	row, ok := t.rows[employee]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEmployee, employee)
	}
	if day < 1 || day > len(row) {
		return "", fmt.Errorf("%w: day %d of %s", ErrInvalidDay, day, t.period)
	}
	return row[day-1], nil
}

// Set assigns the shift for the given employee and day. The table is
// left untouched when validation fails.
func (t *Table) Set(employee string, day int, value Shift) error {
	if !value.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidShift, value)
	}
	row, ok := t.rows[employee]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmployee, employee)
	}
	if day < 1 || day > len(row) {
		return fmt.Errorf("%w: day %d of %s", ErrInvalidDay, day, t.period)
	}
	row[day-1] = value
	return nil
}

// Row returns a copy of the employee's full row
func (t *Table) Row(employee string) ([]Shift, error) {
	row, ok := t.rows[employee]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmployee, employee)
	}
	out := make([]Shift, len(row))
	copy(out, row)
	return out, nil
}

// RowsFor returns a projection of the table restricted to the given
// employees. The projection shares no state with the receiver;
// employees without a row are skipped.
func (t *Table) RowsFor(employees []string) *Table {
	view := &Table{
		period: t.period,
		rows:   make(map[string][]Shift),
	}
	for _, emp := range employees {
		row, ok := t.rows[emp]
		if !ok {
			continue
		}
		cp := make([]Shift, len(row))
		copy(cp, row)
		view.employees = append(view.employees, emp)
		view.rows[emp] = cp
	}
	return view
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	return t.RowsFor(t.employees)
}
