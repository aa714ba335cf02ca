package roster

import "fmt"

// Shift represents a single cell value in a roster table
type Shift string

const (
	ShiftGeneral Shift = "General"
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
	ShiftNight   Shift = "Night"
	ShiftOff     Shift = "Off"
	ShiftHoliday Shift = "Holiday"
)

// DefaultShift is the value assigned to any cell not otherwise overridden
const DefaultShift = ShiftGeneral

// AllShifts lists every recognized shift value in display order
var AllShifts = []Shift{
	ShiftGeneral,
	ShiftMorning,
	ShiftEvening,
	ShiftNight,
	ShiftOff,
	ShiftHoliday,
}

// Valid reports whether the shift is one of the recognized values
func (s Shift) Valid() bool {
	switch s {
	case ShiftGeneral, ShiftMorning, ShiftEvening, ShiftNight, ShiftOff, ShiftHoliday:
		return true
	}
	return false
}

// Assignable reports whether the shift may be set manually by an
// administrator. Off and Holiday are reserved for the overlay.
func (s Shift) Assignable() bool {
	return s.Valid() && s != ShiftOff && s != ShiftHoliday
}

// String returns the display form of the shift
func (s Shift) String() string {
	return string(s)
}

// ParseShift parses a shift value from its display form
func ParseShift(value string) (Shift, error) {
	s := Shift(value)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShift, value)
	}
	return s, nil
}
