package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/username/shift-roster/internal/holiday"
	"github.com/username/shift-roster/internal/roster"
	"github.com/username/shift-roster/internal/team"
	"go.uber.org/zap"
)

// State is the full in-memory snapshot the store persists: teams,
// holidays and every materialized roster table keyed by period.
type State struct {
	Teams    *team.Directory
	Holidays *holiday.Registry
	Rosters  map[string]*roster.Table
}

// NewEmptyState returns a cold-start state with no prior data
func NewEmptyState() *State {
	return &State{
		Teams:    team.NewDirectory(),
		Holidays: holiday.NewRegistry(),
		Rosters:  make(map[string]*roster.Table),
	}
}

// Store reads and writes the application state file
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store for the given data file
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

const dateLayout = "2006-01-02"

// on-disk shapes, mirroring the original roster_data.json layout
type fileState struct {
	Teams    map[string][]string   `json:"teams"`
	Holidays []fileHoliday         `json:"holidays"`
	Rosters  map[string]fileRoster `json:"rosters"`
}

type fileHoliday struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type fileRoster struct {
	Employees []string            `json:"employees"`
	Shifts    map[string][]string `json:"shifts"`
}

// Load hydrates state from the data file. A missing or corrupt file
// yields an empty state; the tool must tolerate a cold start.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("No data file, starting with empty state",
				zap.String("file", s.path))
			return NewEmptyState(), nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var fs fileState
	if err := json.Unmarshal(data, &fs); err != nil {
		s.logger.Warn("Data file is corrupt, starting with empty state",
			zap.String("file", s.path),
			zap.Error(err))
		return NewEmptyState(), nil
	}

	state := s.decode(&fs)
	s.logger.Info("State loaded",
		zap.String("file", s.path),
		zap.Int("teams", len(state.Teams.Teams())),
		zap.Int("holidays", state.Holidays.Len()),
		zap.Int("rosters", len(state.Rosters)))
	return state, nil
}

// Save serializes the full snapshot to the data file. The bytes go to
// a temp file in the same directory first and are renamed over the
// target, so an interrupted write cannot truncate existing data.
func (s *Store) Save(state *State) error {
	fs := encode(state)

	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	s.logger.Debug("State saved",
		zap.String("file", s.path),
		zap.Int("rosters", len(state.Rosters)))
	return nil
}

func (s *Store) decode(fs *fileState) *State {
	state := NewEmptyState()

	if fs.Teams != nil {
		state.Teams = team.NewDirectoryWith(fs.Teams)
	}

	for _, fh := range fs.Holidays {
		date, err := time.Parse(dateLayout, fh.Date)
		if err != nil {
			s.logger.Warn("Skipping holiday with unparseable date",
				zap.String("date", fh.Date),
				zap.String("name", fh.Name))
			continue
		}
		if err := state.Holidays.Add(date, fh.Name); err != nil {
			s.logger.Warn("Skipping duplicate holiday",
				zap.String("date", fh.Date))
		}
	}

	for key, fr := range fs.Rosters {
		period, err := roster.ParsePeriodKey(key)
		if err != nil {
			s.logger.Warn("Skipping roster with invalid period key",
				zap.String("key", key))
			continue
		}

		table := roster.NewTable(period, fr.Employees, roster.DefaultShift)
		for emp, row := range fr.Shifts {
			for i, value := range row {
				if i >= table.Days() {
					break
				}
				shift, err := roster.ParseShift(value)
				if err != nil {
					s.logger.Warn("Skipping unrecognized shift value",
						zap.String("period", key),
						zap.String("employee", emp),
						zap.String("value", value))
					continue
				}
				if err := table.Set(emp, i+1, shift); err != nil {
					break
				}
			}
		}
		state.Rosters[key] = table
	}

	return state
}

func encode(state *State) *fileState {
	fs := &fileState{
		Teams:    state.Teams.Snapshot(),
		Holidays: make([]fileHoliday, 0, state.Holidays.Len()),
		Rosters:  make(map[string]fileRoster, len(state.Rosters)),
	}

	for _, h := range state.Holidays.All() {
		fs.Holidays = append(fs.Holidays, fileHoliday{
			Name: h.Name,
			Date: h.Date.Format(dateLayout),
		})
	}

	for key, table := range state.Rosters {
		fr := fileRoster{
			Employees: table.Employees(),
			Shifts:    make(map[string][]string, table.Len()),
		}
		for _, emp := range fr.Employees {
			row, err := table.Row(emp)
			if err != nil {
				continue
			}
			values := make([]string, len(row))
			for i, shift := range row {
				values[i] = shift.String()
			}
			fr.Shifts[emp] = values
		}
		fs.Rosters[key] = fr
	}

	return fs
}
