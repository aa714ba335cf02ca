// Terminal UI for browsing and editing rosters. Follows The Elm
// Architecture: Model holds all state, Update reacts to messages,
// View renders the current state to a string.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/username/shift-roster/internal/auth"
	"github.com/username/shift-roster/internal/manager"
	"github.com/username/shift-roster/internal/roster"
	"github.com/username/shift-roster/pkg/dateutil"
)

const cellWidth = 4

// viewState represents which screen is active
type viewState int

const (
	stateBrowse   viewState = iota // roster grid
	stateLogin                     // admin password prompt
	stateHoliday                   // holiday add/remove prompt
	stateSchedule                  // per-employee upcoming shifts
)

// App is the main application model
type App struct {
	manager *manager.Manager
	auth    *auth.Manager
	logger  *zap.Logger

	state      viewState
	period     roster.Period
	teamFilter int // 0 = all teams, otherwise index+1 into team list
	row        int
	day        int
	admin      bool

	input       textinput.Model
	scheduleFor string
	status      string
	err         error
	width       int
}

// NewApp creates the TUI model positioned on the current month
func NewApp(mgr *manager.Manager, authMgr *auth.Manager, logger *zap.Logger) *App {
	input := textinput.New()
	input.CharLimit = 64

	return &App{
		manager: mgr,
		auth:    authMgr,
		logger:  logger,
		period:  roster.PeriodOf(mgr.Today()),
		day:     1,
		input:   input,
		width:   120,
	}
}

// Init materializes the current period's table
func (a *App) Init() tea.Cmd {
	if _, err := a.manager.EnsureTable(a.period); err != nil {
		a.err = err
	}
	return textinput.Blink
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch a.state {
		case stateLogin:
			return a.updateLogin(msg)
		case stateHoliday:
			return a.updateHoliday(msg)
		case stateSchedule:
			return a.updateSchedule(msg)
		default:
			return a.updateBrowse(msg)
		}
	}

	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	a.err = nil

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.row > 0 {
			a.row--
		}
	case "down", "j":
		if a.row < len(a.visibleEmployees())-1 {
			a.row++
		}
	case "left", "h":
		if a.day > 1 {
			a.day--
		}
	case "right", "l":
		if a.day < a.period.Days() {
			a.day++
		}

	case "[":
		a.switchPeriod(a.period.Previous())
	case "]":
		a.switchPeriod(a.period.Next())

	case "t":
		a.teamFilter = (a.teamFilter + 1) % (len(a.manager.Teams().Teams()) + 1)
		a.row = 0

	case "s":
		if emp := a.employeeUnderCursor(); emp != "" {
			a.scheduleFor = emp
			a.state = stateSchedule
		}

	case "a":
		if a.admin {
			a.admin = false
			a.status = "Logged out"
			break
		}
		a.input.Reset()
		a.input.EchoMode = textinput.EchoPassword
		a.input.Placeholder = "admin password"
		a.input.Focus()
		a.state = stateLogin

	case "H":
		if !a.admin {
			a.err = fmt.Errorf("admin login required")
			break
		}
		a.input.Reset()
		a.input.EchoMode = textinput.EchoNormal
		a.input.Placeholder = "2024-02-14 Founders Day  (or: rm 2024-02-14)"
		a.input.Focus()
		a.state = stateHoliday

	case "1", "2", "3", "4", "5", "6":
		if !a.admin {
			a.err = fmt.Errorf("admin login required")
			break
		}
		idx := int(msg.String()[0] - '1')
		a.setCursorShift(roster.AllShifts[idx])
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = stateBrowse
		return a, nil
	case "enter":
		if err := a.auth.Verify(a.input.Value()); err != nil {
			a.err = err
		} else {
			a.admin = true
			a.status = "Logged in as admin"
		}
		a.input.Reset()
		a.state = stateBrowse
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateHoliday(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = stateBrowse
		return a, nil
	case "enter":
		a.applyHolidayInput(strings.TrimSpace(a.input.Value()))
		a.input.Reset()
		a.state = stateBrowse
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		a.state = stateBrowse
	case "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

// applyHolidayInput parses "DATE NAME" to add and "rm DATE" to remove
func (a *App) applyHolidayInput(value string) {
	if value == "" {
		return
	}

	if rest, ok := strings.CutPrefix(value, "rm "); ok {
		date, err := dateutil.ParseDate(strings.TrimSpace(rest))
		if err != nil {
			a.err = err
			return
		}
		removed, err := a.manager.RemoveHoliday(date)
		if err != nil {
			a.err = err
			return
		}
		if removed == nil {
			a.status = "No holiday on that date"
			return
		}
		a.status = fmt.Sprintf("Removed holiday %q", removed.Name)
		return
	}

	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		a.err = fmt.Errorf("expected: YYYY-MM-DD Name")
		return
	}
	date, err := dateutil.ParseDate(parts[0])
	if err != nil {
		a.err = err
		return
	}
	if err := a.manager.AddHoliday(date, strings.TrimSpace(parts[1])); err != nil {
		a.err = err
		return
	}
	a.status = fmt.Sprintf("Added holiday %q", strings.TrimSpace(parts[1]))
}

func (a *App) switchPeriod(period roster.Period) {
	a.period = period
	if a.day > period.Days() {
		a.day = period.Days()
	}
	if _, err := a.manager.EnsureTable(period); err != nil {
		a.err = err
	}
}

func (a *App) setCursorShift(value roster.Shift) {
	emp := a.employeeUnderCursor()
	if emp == "" {
		a.err = fmt.Errorf("no employee selected")
		return
	}
	if err := a.manager.SetShift(a.period, emp, a.day, value); err != nil {
		a.err = err
		return
	}
	a.status = fmt.Sprintf("%s day %d -> %s", emp, a.day, value)
}

func (a *App) visibleEmployees() []string {
	teams := a.manager.Teams().Teams()
	if a.teamFilter == 0 || a.teamFilter > len(teams) {
		return a.manager.Teams().AllEmployees()
	}
	return a.manager.Teams().TeamEmployees(teams[a.teamFilter-1])
}

func (a *App) employeeUnderCursor() string {
	employees := a.visibleEmployees()
	if a.row < 0 || a.row >= len(employees) {
		return ""
	}
	return employees[a.row]
}

func (a *App) filterLabel() string {
	teams := a.manager.Teams().Teams()
	if a.teamFilter == 0 || a.teamFilter > len(teams) {
		return "All Teams"
	}
	return teams[a.teamFilter-1]
}

// View renders the active screen
func (a *App) View() string {
	switch a.state {
	case stateLogin:
		return a.viewPrompt("Admin Login")
	case stateHoliday:
		return a.viewPrompt("Manage Holidays")
	case stateSchedule:
		return a.viewSchedule()
	default:
		return a.viewGrid()
	}
}

func (a *App) viewPrompt(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	if a.err != nil {
		b.WriteString(errorStyle.Render(a.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: confirm  esc: cancel"))
	return b.String()
}

func (a *App) viewSchedule() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Schedule for %s", a.scheduleFor)))
	b.WriteString("\n\n")

	shifts := a.manager.UpcomingShifts(a.scheduleFor, a.manager.Today())
	if len(shifts) == 0 {
		b.WriteString("No upcoming shifts found.\n")
	} else {
		b.WriteString(headerStyle.Render("Upcoming Shifts"))
		b.WriteString("\n")
		for _, e := range shifts {
			b.WriteString(fmt.Sprintf("  %s  %-9s  %s\n",
				e.Date.Format("2006-01-02"), e.Weekday, e.Shift))
		}
	}

	holidays := a.manager.UpcomingHolidays(a.scheduleFor, a.manager.Today())
	b.WriteString("\n")
	if len(holidays) == 0 {
		b.WriteString("No upcoming holidays assigned in the roster.\n")
	} else {
		b.WriteString(headerStyle.Render("Upcoming Holidays"))
		b.WriteString("\n")
		for _, h := range holidays {
			b.WriteString(fmt.Sprintf("  %s  %s\n", h.Date.Format("2006-01-02"), h.Name))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: back"))
	return b.String()
}

func (a *App) viewGrid() string {
	var b strings.Builder

	mode := "Employee View"
	if a.admin {
		mode = "Admin View"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Shift Roster for %s", a.period)))
	b.WriteString(headerStyle.Render(fmt.Sprintf("   %s | %s", mode, a.filterLabel())))
	b.WriteString("\n\n")

	table, err := a.manager.Table(a.period)
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		return b.String()
	}
	view := table.RowsFor(a.visibleEmployees())

	if view.Len() == 0 {
		b.WriteString("No employees to display for the selected team.\n")
	} else {
		b.WriteString(a.renderGrid(view))
	}

	b.WriteString("\n")
	if a.err != nil {
		b.WriteString(errorStyle.Render(a.err.Error()))
		b.WriteString("\n")
	} else if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}

	help := "arrows: move  [/]: month  t: team  s: schedule  a: admin login  q: quit"
	if a.admin {
		help = "arrows: move  [/]: month  t: team  s: schedule  1-6: set shift  H: holidays  a: logout  q: quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("shifts: 1=General 2=Morning 3=Evening 4=Night 5=Off 6=Holiday"))
	return b.String()
}

// renderGrid draws the employee x day grid, windowed horizontally
// around the cursor when the month does not fit the terminal
func (a *App) renderGrid(view *roster.Table) string {
	firstDay, lastDay := a.dayWindow(view.Days())

	var b strings.Builder

	// Day numbers on the first header row, weekday abbreviations below.
	b.WriteString(employeeStyle.Render("Employee"))
	for day := firstDay; day <= lastDay; day++ {
		label := fmt.Sprintf("%d", day)
		if day == a.day {
			label = cursorStyle.Render(label)
			b.WriteString(lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Render(label))
			continue
		}
		b.WriteString(headerStyle.Width(cellWidth).Align(lipgloss.Center).Render(label))
	}
	b.WriteString("\n")

	b.WriteString(employeeStyle.Render(""))
	for day := firstDay; day <= lastDay; day++ {
		name, err := dateutil.WeekdayName(a.period.Year, a.period.Month, day)
		if err != nil {
			name = "?"
		}
		b.WriteString(headerStyle.Width(cellWidth).Align(lipgloss.Center).Render(name))
	}
	b.WriteString("\n")

	for i, emp := range view.Employees() {
		name := emp
		if len(name) > 23 {
			name = name[:20] + "..."
		}
		if i == a.row {
			b.WriteString(cursorStyle.Width(24).Render(name))
		} else {
			b.WriteString(employeeStyle.Render(name))
		}

		for day := firstDay; day <= lastDay; day++ {
			shift, err := view.Get(emp, day)
			if err != nil {
				continue
			}
			selected := i == a.row && day == a.day
			b.WriteString(cellStyle(shift, selected).Render(abbreviate(shift)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// dayWindow returns the inclusive day range that fits the terminal
func (a *App) dayWindow(days int) (int, int) {
	visible := (a.width - 24) / cellWidth
	if visible < 7 {
		visible = 7
	}
	if visible >= days {
		return 1, days
	}

	first := a.day - visible/2
	if first < 1 {
		first = 1
	}
	last := first + visible - 1
	if last > days {
		last = days
		first = last - visible + 1
	}
	return first, last
}

func abbreviate(shift roster.Shift) string {
	if len(shift) <= 3 {
		return string(shift)
	}
	return string(shift)[:3]
}
