package manager

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/shift-roster/internal/holiday"
	"github.com/username/shift-roster/internal/roster"
	"github.com/username/shift-roster/internal/store"
	"github.com/username/shift-roster/internal/team"
	"github.com/username/shift-roster/pkg/dateutil"
	"go.uber.org/zap"
)

// Manager ties the team directory, holiday registry and roster tables
// together and persists state after every structural mutation.
// Single administrator session semantics; callers must re-fetch tables
// after reconciliation since tables may be replaced wholesale.
type Manager struct {
	state  *store.State
	store  *store.Store
	def    roster.Shift
	loc    *time.Location
	logger *zap.Logger
}

// ShiftEntry is one upcoming shift in an employee's schedule view
type ShiftEntry struct {
	Date    time.Time
	Weekday string
	Shift   roster.Shift
}

// HolidayEntry is one upcoming holiday in an employee's schedule view
type HolidayEntry struct {
	Date time.Time
	Name string
}

// NewManager creates a roster manager over loaded state. loc is the
// display timezone used to resolve "today"; nil means local time.
func NewManager(state *store.State, st *store.Store, def roster.Shift, loc *time.Location, logger *zap.Logger) *Manager {
	if !def.Assignable() {
		def = roster.DefaultShift
	}
	if loc == nil {
		loc = time.Local
	}
	return &Manager{
		state:  state,
		store:  st,
		def:    def,
		loc:    loc,
		logger: logger,
	}
}

// Today returns the current date in the configured display timezone
func (m *Manager) Today() time.Time {
	return dateutil.TodayIn(m.loc)
}

// Teams exposes the team directory for read-only traversal
func (m *Manager) Teams() *team.Directory {
	return m.state.Teams
}

// Holidays exposes the holiday registry for read-only traversal
func (m *Manager) Holidays() *holiday.Registry {
	return m.state.Holidays
}

// DefaultShift returns the configured default shift value
func (m *Manager) DefaultShift() roster.Shift {
	return m.def
}

// EnsureTable returns the table for the period, materializing it on
// first request: carried forward from the immediately preceding period
// when that one exists, generated fresh otherwise.
func (m *Manager) EnsureTable(period roster.Period) (*roster.Table, error) {
	if table, ok := m.state.Rosters[period.Key()]; ok {
		return table, nil
	}

	employees := m.state.Teams.AllEmployees()
	var table *roster.Table

	if prev, ok := m.state.Rosters[period.Previous().Key()]; ok {
		m.logger.Info("Carrying roster forward",
			zap.String("from", period.Previous().Key()),
			zap.String("to", period.Key()),
			zap.Int("employees", len(employees)))
		table = roster.CarryForward(prev, period, employees, m.def, m.state.Holidays)
	} else {
		m.logger.Info("Generating fresh roster",
			zap.String("period", period.Key()),
			zap.Int("employees", len(employees)))
		table = roster.Generate(period, employees, m.def, m.state.Holidays)
	}

	m.state.Rosters[period.Key()] = table
	if err := m.persist(); err != nil {
		return nil, err
	}
	return table, nil
}

// Table returns the already materialized table for the period
func (m *Manager) Table(period roster.Period) (*roster.Table, error) {
	table, ok := m.state.Rosters[period.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", roster.ErrPeriodNotFound, period)
	}
	return table, nil
}

// SetShift applies a manual edit to one cell and persists
func (m *Manager) SetShift(period roster.Period, employee string, day int, value roster.Shift) error {
	table, err := m.Table(period)
	if err != nil {
		return err
	}
	if err := table.Set(employee, day, value); err != nil {
		return err
	}
	return m.persist()
}

// AddHoliday registers a holiday and re-applies the overlay to the
// affected period's table when one is materialized
func (m *Manager) AddHoliday(date time.Time, name string) error {
	if err := m.state.Holidays.Add(date, name); err != nil {
		return err
	}

	if table, ok := m.state.Rosters[roster.PeriodOf(date).Key()]; ok {
		roster.ApplyOverlay(table, m.state.Holidays)
	}

	m.logger.Info("Holiday added",
		zap.String("date", date.Format("2006-01-02")),
		zap.String("name", name))
	return m.persist()
}

// RemoveHoliday deletes a holiday and reverts affected cells: Off when
// the date is a weekend, the default shift otherwise. Returns nil when
// no holiday existed on the date.
func (m *Manager) RemoveHoliday(date time.Time) (*holiday.Holiday, error) {
	removed := m.state.Holidays.Remove(date)
	if removed == nil {
		return nil, nil
	}

	if table, ok := m.state.Rosters[roster.PeriodOf(removed.Date).Key()]; ok {
		roster.RevertHoliday(table, removed.Date, m.def, m.state.Holidays)
	}

	m.logger.Info("Holiday removed",
		zap.String("date", removed.Date.Format("2006-01-02")),
		zap.String("name", removed.Name))
	if err := m.persist(); err != nil {
		return nil, err
	}
	return removed, nil
}

// AddTeam registers a new empty team
func (m *Manager) AddTeam(name string) error {
	if err := m.state.Teams.AddTeam(name); err != nil {
		return err
	}
	return m.persist()
}

// DeleteTeam removes an empty team
func (m *Manager) DeleteTeam(name string) error {
	if err := m.state.Teams.DeleteTeam(name); err != nil {
		return err
	}
	return m.persist()
}

// AddEmployee hires an employee into a team and reconciles every
// materialized period from the effective period forward
func (m *Manager) AddEmployee(teamName, name string, effective roster.Period) error {
	if err := m.state.Teams.AddEmployee(teamName, name); err != nil {
		return err
	}
	m.propagateEmployeeChanges(effective)
	return m.persist()
}

// RemoveEmployee terminates an employee and reconciles every
// materialized period from the effective period forward
func (m *Manager) RemoveEmployee(teamName, name string, effective roster.Period) error {
	if err := m.state.Teams.RemoveEmployee(teamName, name); err != nil {
		return err
	}
	m.propagateEmployeeChanges(effective)
	return m.persist()
}

// propagateEmployeeChanges reconciles every table whose first day is on
// or after the effective period's first day. Periods strictly before
// are left untouched; past schedules are not retroactively rewritten.
func (m *Manager) propagateEmployeeChanges(effective roster.Period) {
	employees := m.state.Teams.AllEmployees()

	for key, table := range m.state.Rosters {
		period, err := roster.ParsePeriodKey(key)
		if err != nil || period.Before(effective) {
			continue
		}
		m.state.Rosters[key] = roster.Reconcile(table, employees, m.def, m.state.Holidays)
	}

	m.logger.Info("Employee changes propagated",
		zap.String("effective", effective.Key()),
		zap.Int("employees", len(employees)))
}

// UpcomingShifts returns the employee's shifts on or after the given
// date, ascending, across every materialized period
func (m *Manager) UpcomingShifts(employeeID string, from time.Time) []ShiftEntry {
	var entries []ShiftEntry

	// Table dates are UTC midnights; pin the cutoff to the same shape
	// so local-zone callers get the full starting day.
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	fromPeriod := roster.PeriodOf(from)

	for _, key := range m.sortedPeriodKeys() {
		period, err := roster.ParsePeriodKey(key)
		if err != nil || period.Before(fromPeriod) {
			continue
		}

		table := m.state.Rosters[key]
		if !table.Has(employeeID) {
			continue
		}

		for day := 1; day <= table.Days(); day++ {
			date, err := period.Date(day)
			if err != nil || date.Before(from) {
				continue
			}
			shift, err := table.Get(employeeID, day)
			if err != nil {
				continue
			}
			entries = append(entries, ShiftEntry{
				Date:    date,
				Weekday: date.Weekday().String(),
				Shift:   shift,
			})
		}
	}

	return entries
}

// UpcomingHolidays returns the employee's holiday-marked days on or
// after the given date, with names resolved from the registry
func (m *Manager) UpcomingHolidays(employeeID string, from time.Time) []HolidayEntry {
	var entries []HolidayEntry

	for _, e := range m.UpcomingShifts(employeeID, from) {
		if e.Shift != roster.ShiftHoliday {
			continue
		}
		name, ok := m.state.Holidays.NameFor(e.Date)
		if !ok {
			name = "Holiday"
		}
		entries = append(entries, HolidayEntry{Date: e.Date, Name: name})
	}

	return entries
}

// PeriodKeys returns every materialized period key, ascending
func (m *Manager) PeriodKeys() []string {
	return m.sortedPeriodKeys()
}

func (m *Manager) sortedPeriodKeys() []string {
	keys := make([]string, 0, len(m.state.Rosters))
	for key := range m.state.Rosters {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, erri := roster.ParsePeriodKey(keys[i])
		pj, errj := roster.ParsePeriodKey(keys[j])
		if erri != nil || errj != nil {
			return keys[i] < keys[j]
		}
		return pi.Before(pj)
	})
	return keys
}

func (m *Manager) persist() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(m.state); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}
