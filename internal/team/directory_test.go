package team

import (
	"errors"
	"testing"
)

func TestDirectoryTeamLifecycle(t *testing.T) {
	d := NewDirectory()

	if err := d.AddTeam("Team A"); err != nil {
		t.Fatalf("AddTeam() error = %v", err)
	}
	if err := d.AddTeam("Team A"); !errors.Is(err, ErrTeamExists) {
		t.Errorf("AddTeam(duplicate) error = %v, want ErrTeamExists", err)
	}
	if err := d.AddTeam("  "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("AddTeam(blank) error = %v, want ErrEmptyName", err)
	}

	if err := d.AddEmployee("Team A", "Alice"); err != nil {
		t.Fatalf("AddEmployee() error = %v", err)
	}

	// A team with members cannot be deleted.
	if err := d.DeleteTeam("Team A"); !errors.Is(err, ErrTeamNotEmpty) {
		t.Errorf("DeleteTeam(non-empty) error = %v, want ErrTeamNotEmpty", err)
	}

	if err := d.RemoveEmployee("Team A", "Alice"); err != nil {
		t.Fatalf("RemoveEmployee() error = %v", err)
	}
	if err := d.DeleteTeam("Team A"); err != nil {
		t.Errorf("DeleteTeam(empty) error = %v", err)
	}
	if err := d.DeleteTeam("Team A"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("DeleteTeam(missing) error = %v, want ErrTeamNotFound", err)
	}
}

func TestDirectoryEmployeeGuards(t *testing.T) {
	d := NewDirectory()
	_ = d.AddTeam("Team A")

	if err := d.AddEmployee("Team X", "Alice"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("AddEmployee(missing team) error = %v, want ErrTeamNotFound", err)
	}

	if err := d.AddEmployee("Team A", "Alice"); err != nil {
		t.Fatalf("AddEmployee() error = %v", err)
	}
	if err := d.AddEmployee("Team A", "Alice"); !errors.Is(err, ErrEmployeeExists) {
		t.Errorf("AddEmployee(duplicate) error = %v, want ErrEmployeeExists", err)
	}
	if err := d.RemoveEmployee("Team A", "Bob"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("RemoveEmployee(missing) error = %v, want ErrMemberNotFound", err)
	}
}

func TestQualifiedEmployeeIDs(t *testing.T) {
	d := NewDirectory()
	_ = d.AddTeam("Team Avengers")
	_ = d.AddTeam("Team Justice")
	_ = d.AddEmployee("Team Avengers", "Alice")
	_ = d.AddEmployee("Team Justice", "Alice") // same name, different team
	_ = d.AddEmployee("Team Avengers", "Bob")

	all := d.AllEmployees()
	if len(all) != 3 {
		t.Fatalf("AllEmployees() = %d entries, want 3", len(all))
	}

	// Same-named employees stay distinct through team qualification.
	expected := map[string]bool{
		"Alice (Team Avengers)": true,
		"Alice (Team Justice)":  true,
		"Bob (Team Avengers)":   true,
	}
	for _, id := range all {
		if !expected[id] {
			t.Errorf("unexpected employee id %q", id)
		}
	}

	// Sorted output.
	for i := 1; i < len(all); i++ {
		if all[i] < all[i-1] {
			t.Errorf("AllEmployees() not sorted: %q after %q", all[i], all[i-1])
		}
	}

	team := d.TeamEmployees("Team Avengers")
	if len(team) != 2 {
		t.Errorf("TeamEmployees() = %d entries, want 2", len(team))
	}
}

func TestSplitEmployeeID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantName string
		wantTeam string
		wantOK   bool
	}{
		{
			name:     "simple id",
			id:       "Alice (Team A)",
			wantName: "Alice",
			wantTeam: "Team A",
			wantOK:   true,
		},
		{
			name:     "name containing parentheses",
			id:       "Bob (the builder) (Team B)",
			wantName: "Bob (the builder)",
			wantTeam: "Team B",
			wantOK:   true,
		},
		{
			name:   "missing team qualifier",
			id:     "Alice",
			wantOK: false,
		},
		{
			name:   "empty string",
			id:     "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, teamName, ok := SplitEmployeeID(tt.id)

			if ok != tt.wantOK {
				t.Fatalf("SplitEmployeeID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if name != tt.wantName || teamName != tt.wantTeam {
				t.Errorf("SplitEmployeeID(%q) = %q, %q; want %q, %q",
					tt.id, name, teamName, tt.wantName, tt.wantTeam)
			}

			if QualifyEmployee(name, teamName) != tt.id {
				t.Errorf("QualifyEmployee() does not round-trip %q", tt.id)
			}
		})
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	d := NewDirectory()
	_ = d.AddTeam("Team A")
	_ = d.AddEmployee("Team A", "Alice")

	snap := d.Snapshot()
	snap["Team A"][0] = "Mallory"

	if d.Members("Team A")[0] != "Alice" {
		t.Error("mutating the snapshot changed the directory")
	}
}
