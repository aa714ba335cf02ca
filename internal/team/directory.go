package team

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds for team and employee management
var (
	ErrTeamExists     = errors.New("team already exists")
	ErrTeamNotFound   = errors.New("team not found")
	ErrTeamNotEmpty   = errors.New("cannot delete a team with members")
	ErrEmployeeExists = errors.New("employee already in team")
	ErrMemberNotFound = errors.New("employee not found in team")
	ErrEmptyName      = errors.New("name cannot be empty")
)

// Directory holds every team and its members. Employees are owned by
// exactly one team and identified elsewhere by their team-qualified id
// "Name (Team)", so same-named employees on different teams stay
// distinct.
type Directory struct {
	names   []string
	members map[string][]string
}

// NewDirectory creates an empty directory
func NewDirectory() *Directory {
	return &Directory{members: make(map[string][]string)}
}

// NewDirectoryWith creates a directory from an existing team map,
// keeping team names in sorted order
func NewDirectoryWith(teams map[string][]string) *Directory {
	d := NewDirectory()
	for name, members := range teams {
		d.names = append(d.names, name)
		d.members[name] = append([]string(nil), members...)
	}
	sort.Strings(d.names)
	return d
}

// AddTeam registers a new empty team
func (d *Directory) AddTeam(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := d.members[name]; ok {
		return fmt.Errorf("%w: %q", ErrTeamExists, name)
	}

	d.names = append(d.names, name)
	sort.Strings(d.names)
	d.members[name] = nil
	return nil
}

// DeleteTeam removes a team; it must be empty
func (d *Directory) DeleteTeam(name string) error {
	members, ok := d.members[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTeamNotFound, name)
	}
	if len(members) > 0 {
		return fmt.Errorf("%w: %q has %d member(s)", ErrTeamNotEmpty, name, len(members))
	}

	delete(d.members, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return nil
}

// AddEmployee appends an employee to a team
func (d *Directory) AddEmployee(teamName, employee string) error {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return ErrEmptyName
	}
	members, ok := d.members[teamName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTeamNotFound, teamName)
	}
	for _, m := range members {
		if m == employee {
			return fmt.Errorf("%w: %q in %q", ErrEmployeeExists, employee, teamName)
		}
	}

	d.members[teamName] = append(members, employee)
	return nil
}

// RemoveEmployee drops an employee from a team
func (d *Directory) RemoveEmployee(teamName, employee string) error {
	members, ok := d.members[teamName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTeamNotFound, teamName)
	}
	for i, m := range members {
		if m == employee {
			d.members[teamName] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %q", ErrMemberNotFound, employee, teamName)
}

// Teams returns team names in sorted order
func (d *Directory) Teams() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// HasTeam reports whether the team exists
func (d *Directory) HasTeam(name string) bool {
	_, ok := d.members[name]
	return ok
}

// Members returns the team's members in insertion order
func (d *Directory) Members(teamName string) []string {
	return append([]string(nil), d.members[teamName]...)
}

// TeamEmployees returns the team-qualified ids of one team's members
func (d *Directory) TeamEmployees(teamName string) []string {
	members := d.members[teamName]
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, QualifyEmployee(m, teamName))
	}
	return out
}

// AllEmployees returns the team-qualified ids of every employee,
// sorted, across all teams
func (d *Directory) AllEmployees() []string {
	var out []string
	for name, members := range d.members {
		for _, m := range members {
			out = append(out, QualifyEmployee(m, name))
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a deep copy of the team map for persistence
func (d *Directory) Snapshot() map[string][]string {
	out := make(map[string][]string, len(d.members))
	for name, members := range d.members {
		out[name] = append([]string(nil), members...)
	}
	return out
}

// QualifyEmployee builds the team-qualified employee id
func QualifyEmployee(name, teamName string) string {
	return fmt.Sprintf("%s (%s)", name, teamName)
}

// SplitEmployeeID splits a team-qualified id back into name and team
func SplitEmployeeID(id string) (name, teamName string, ok bool) {
	open := strings.LastIndex(id, " (")
	if open < 1 || !strings.HasSuffix(id, ")") {
		return "", "", false
	}
	return id[:open], id[open+2 : len(id)-1], true
}
