package manager

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/shift-roster/internal/roster"
	"github.com/username/shift-roster/internal/store"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	st := store.NewStore(filepath.Join(t.TempDir(), "roster_data.json"), zap.NewNop())
	state, err := st.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m := NewManager(state, st, roster.DefaultShift, time.UTC, zap.NewNop())
	if err := m.AddTeam("Team A"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddEmployee("Team A", "Alice", roster.Period{Year: 2024, Month: time.January}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddEmployee("Team A", "Bob", roster.Period{Year: 2024, Month: time.January}); err != nil {
		t.Fatal(err)
	}
	return m
}

func cell(t *testing.T, table *roster.Table, emp string, day int) roster.Shift {
	t.Helper()
	shift, err := table.Get(emp, day)
	if err != nil {
		t.Fatalf("Get(%q, %d) error = %v", emp, day, err)
	}
	return shift
}

func TestEnsureTableGeneratesFresh(t *testing.T) {
	m := newTestManager(t)
	period := roster.Period{Year: 2024, Month: time.February}

	table, err := m.EnsureTable(period)
	if err != nil {
		t.Fatalf("EnsureTable() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	// February 3 2024 is a Saturday.
	if got := cell(t, table, "Alice (Team A)", 3); got != roster.ShiftOff {
		t.Errorf("cell(Alice, 3) = %v, want Off", got)
	}

	// Second request returns the same materialized table.
	again, err := m.EnsureTable(period)
	if err != nil {
		t.Fatalf("EnsureTable() error = %v", err)
	}
	if again != table {
		t.Error("EnsureTable() materialized a second table for the same period")
	}
}

func TestEnsureTableCarriesForward(t *testing.T) {
	m := newTestManager(t)
	january := roster.Period{Year: 2024, Month: time.January}
	february := roster.Period{Year: 2024, Month: time.February}

	if _, err := m.EnsureTable(january); err != nil {
		t.Fatalf("EnsureTable() error = %v", err)
	}
	// January 9 2024 is a Tuesday; February 9 2024 is a Friday.
	if err := m.SetShift(january, "Alice (Team A)", 9, roster.ShiftNight); err != nil {
		t.Fatalf("SetShift() error = %v", err)
	}

	table, err := m.EnsureTable(february)
	if err != nil {
		t.Fatalf("EnsureTable() error = %v", err)
	}
	if got := cell(t, table, "Alice (Team A)", 9); got != roster.ShiftNight {
		t.Errorf("cell(Alice, 9) = %v, want carried Night", got)
	}
}

func TestTableNotFound(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Table(roster.Period{Year: 2030, Month: time.June})
	if !errors.Is(err, roster.ErrPeriodNotFound) {
		t.Errorf("Table() error = %v, want ErrPeriodNotFound", err)
	}
}

func TestSetShiftValidation(t *testing.T) {
	m := newTestManager(t)
	period := roster.Period{Year: 2024, Month: time.February}
	if _, err := m.EnsureTable(period); err != nil {
		t.Fatal(err)
	}

	if err := m.SetShift(period, "Mallory (Team A)", 5, roster.ShiftNight); !errors.Is(err, roster.ErrUnknownEmployee) {
		t.Errorf("SetShift(unknown employee) error = %v", err)
	}
	if err := m.SetShift(period, "Alice (Team A)", 30, roster.ShiftNight); !errors.Is(err, roster.ErrInvalidDay) {
		t.Errorf("SetShift(day 30 of February) error = %v", err)
	}
}

func TestAddHolidayUpdatesMaterializedTable(t *testing.T) {
	m := newTestManager(t)
	period := roster.Period{Year: 2024, Month: time.February}
	if _, err := m.EnsureTable(period); err != nil {
		t.Fatal(err)
	}

	// February 14 2024 is a Wednesday.
	date := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	if err := m.AddHoliday(date, "Founders Day"); err != nil {
		t.Fatalf("AddHoliday() error = %v", err)
	}

	table, err := m.Table(period)
	if err != nil {
		t.Fatal(err)
	}
	for _, emp := range table.Employees() {
		if got := cell(t, table, emp, 14); got != roster.ShiftHoliday {
			t.Errorf("cell(%q, 14) = %v, want Holiday", emp, got)
		}
	}

	// Duplicate date is rejected.
	if err := m.AddHoliday(date, "Second Day"); err == nil {
		t.Error("AddHoliday(duplicate) expected error")
	}
}

func TestRemoveHolidayReverts(t *testing.T) {
	tests := []struct {
		name string
		day  int
		want roster.Shift
	}{
		{
			name: "weekday reverts to default",
			day:  14,
			want: roster.DefaultShift,
		},
		{
			name: "weekend reverts to Off",
			day:  10,
			want: roster.ShiftOff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			period := roster.Period{Year: 2024, Month: time.February}
			if _, err := m.EnsureTable(period); err != nil {
				t.Fatal(err)
			}

			date := time.Date(2024, 2, tt.day, 0, 0, 0, 0, time.UTC)
			if err := m.AddHoliday(date, "Festival"); err != nil {
				t.Fatal(err)
			}

			removed, err := m.RemoveHoliday(date)
			if err != nil {
				t.Fatalf("RemoveHoliday() error = %v", err)
			}
			if removed == nil || removed.Name != "Festival" {
				t.Fatalf("RemoveHoliday() = %v, want Festival", removed)
			}

			table, err := m.Table(period)
			if err != nil {
				t.Fatal(err)
			}
			if got := cell(t, table, "Alice (Team A)", tt.day); got != tt.want {
				t.Errorf("cell(Alice, %d) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestRemoveHolidayAbsent(t *testing.T) {
	m := newTestManager(t)

	removed, err := m.RemoveHoliday(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RemoveHoliday() error = %v", err)
	}
	if removed != nil {
		t.Errorf("RemoveHoliday(absent) = %v, want nil", removed)
	}
}

func TestEmployeeChangePropagation(t *testing.T) {
	m := newTestManager(t)
	january := roster.Period{Year: 2024, Month: time.January}
	february := roster.Period{Year: 2024, Month: time.February}

	if _, err := m.EnsureTable(january); err != nil {
		t.Fatal(err)
	}
	if _, err := m.EnsureTable(february); err != nil {
		t.Fatal(err)
	}

	// Termination effective February: January is history and stays put.
	if err := m.RemoveEmployee("Team A", "Bob", february); err != nil {
		t.Fatalf("RemoveEmployee() error = %v", err)
	}

	janTable, err := m.Table(january)
	if err != nil {
		t.Fatal(err)
	}
	if !janTable.Has("Bob (Team A)") {
		t.Error("January roster was rewritten for a change effective February")
	}

	febTable, err := m.Table(february)
	if err != nil {
		t.Fatal(err)
	}
	if febTable.Has("Bob (Team A)") {
		t.Error("February roster still has the removed employee")
	}

	// Hire effective February: new row appears with overlay defaults.
	if err := m.AddEmployee("Team A", "Carol", february); err != nil {
		t.Fatalf("AddEmployee() error = %v", err)
	}

	febTable, err = m.Table(february)
	if err != nil {
		t.Fatal(err)
	}
	if !febTable.Has("Carol (Team A)") {
		t.Fatal("February roster missing the new hire")
	}
	if got := cell(t, febTable, "Carol (Team A)", 3); got != roster.ShiftOff {
		t.Errorf("cell(Carol, 3) = %v, want Off", got)
	}

	janTable, err = m.Table(january)
	if err != nil {
		t.Fatal(err)
	}
	if janTable.Has("Carol (Team A)") {
		t.Error("January roster was rewritten for a hire effective February")
	}
}

func TestReconcilePreservesRetainedCells(t *testing.T) {
	m := newTestManager(t)
	february := roster.Period{Year: 2024, Month: time.February}
	if _, err := m.EnsureTable(february); err != nil {
		t.Fatal(err)
	}
	if err := m.SetShift(february, "Alice (Team A)", 9, roster.ShiftNight); err != nil {
		t.Fatal(err)
	}

	if err := m.RemoveEmployee("Team A", "Bob", february); err != nil {
		t.Fatal(err)
	}

	table, err := m.Table(february)
	if err != nil {
		t.Fatal(err)
	}
	if got := cell(t, table, "Alice (Team A)", 9); got != roster.ShiftNight {
		t.Errorf("cell(Alice, 9) = %v after reconcile, want Night", got)
	}
}

func TestUpcomingShifts(t *testing.T) {
	m := newTestManager(t)
	january := roster.Period{Year: 2024, Month: time.January}
	february := roster.Period{Year: 2024, Month: time.February}

	if _, err := m.EnsureTable(january); err != nil {
		t.Fatal(err)
	}
	if _, err := m.EnsureTable(february); err != nil {
		t.Fatal(err)
	}

	from := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	entries := m.UpcomingShifts("Alice (Team A)", from)

	// Jan 30, Jan 31 and all 29 February days.
	if len(entries) != 31 {
		t.Fatalf("UpcomingShifts() = %d entries, want 31", len(entries))
	}
	if !entries[0].Date.Equal(from) {
		t.Errorf("first entry date = %v, want %v (inclusive)", entries[0].Date, from)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.Before(entries[i-1].Date) {
			t.Errorf("entries out of order at %d: %v before %v",
				i, entries[i].Date, entries[i-1].Date)
		}
	}

	if got := m.UpcomingShifts("Mallory (Team A)", from); len(got) != 0 {
		t.Errorf("UpcomingShifts(unknown) = %d entries, want 0", len(got))
	}
}

func TestUpcomingHolidays(t *testing.T) {
	m := newTestManager(t)
	february := roster.Period{Year: 2024, Month: time.February}
	if _, err := m.EnsureTable(february); err != nil {
		t.Fatal(err)
	}
	if err := m.AddHoliday(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), "Founders Day"); err != nil {
		t.Fatal(err)
	}

	entries := m.UpcomingHolidays("Alice (Team A)", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if len(entries) != 1 {
		t.Fatalf("UpcomingHolidays() = %d entries, want 1", len(entries))
	}
	if entries[0].Name != "Founders Day" {
		t.Errorf("holiday name = %q, want Founders Day", entries[0].Name)
	}
	if entries[0].Date.Day() != 14 {
		t.Errorf("holiday day = %d, want 14", entries[0].Date.Day())
	}
}

func TestTodayUsesConfiguredLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	m := NewManager(store.NewEmptyState(), nil, roster.DefaultShift, ist, zap.NewNop())

	today := m.Today()
	if today.Location() != ist {
		t.Errorf("Today() location = %v, want IST", today.Location())
	}
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("Today() = %v, want start of day", today)
	}
}

func TestStatePersistsAcrossManagers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster_data.json")

	st := store.NewStore(path, zap.NewNop())
	state, err := st.Load()
	if err != nil {
		t.Fatal(err)
	}

	m := NewManager(state, st, roster.DefaultShift, time.UTC, zap.NewNop())
	if err := m.AddTeam("Team A"); err != nil {
		t.Fatal(err)
	}
	period := roster.Period{Year: 2024, Month: time.February}
	if err := m.AddEmployee("Team A", "Alice", period); err != nil {
		t.Fatal(err)
	}
	if _, err := m.EnsureTable(period); err != nil {
		t.Fatal(err)
	}
	if err := m.SetShift(period, "Alice (Team A)", 9, roster.ShiftNight); err != nil {
		t.Fatal(err)
	}

	// A fresh manager over the same file sees the same state.
	reloaded, err := store.NewStore(path, zap.NewNop()).Load()
	if err != nil {
		t.Fatal(err)
	}
	m2 := NewManager(reloaded, nil, roster.DefaultShift, time.UTC, zap.NewNop())

	table, err := m2.Table(period)
	if err != nil {
		t.Fatalf("Table() after reload error = %v", err)
	}
	if got := cell(t, table, "Alice (Team A)", 9); got != roster.ShiftNight {
		t.Errorf("cell(Alice, 9) = %v after reload, want Night", got)
	}
}
