package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/username/shift-roster/internal/auth"
	"github.com/username/shift-roster/internal/roster"
	"github.com/username/shift-roster/internal/tui"
	"github.com/username/shift-roster/pkg/dateutil"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive roster view",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewApp(mgr, authMgr, logger),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run UI: %w", err)
			}
			return nil
		},
	}
}

func teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a new team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			if err := mgr.AddTeam(args[0]); err != nil {
				return err
			}
			fmt.Printf("Team %q added\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an empty team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			if err := mgr.DeleteTeam(args[0]); err != nil {
				return err
			}
			fmt.Printf("Team %q deleted\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List teams and members",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := initializeApp()
			if err != nil {
				return err
			}
			for _, name := range mgr.Teams().Teams() {
				members := mgr.Teams().Members(name)
				fmt.Printf("%s (%d member(s))\n", name, len(members))
				for _, m := range members {
					fmt.Printf("  %s\n", m)
				}
			}
			return nil
		},
	})

	return cmd
}

func employeeCmd() *cobra.Command {
	var effective string

	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}
	cmd.PersistentFlags().StringVar(&effective, "effective", "",
		"Period (YYYY-M) from which the change applies; defaults to the current month")

	cmd.AddCommand(&cobra.Command{
		Use:   "add <team> <name>",
		Short: "Hire an employee into a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			period, err := parsePeriod(effective, mgr.Today())
			if err != nil {
				return err
			}
			if err := mgr.AddEmployee(args[0], args[1], period); err != nil {
				return err
			}
			fmt.Printf("Added %q to %q, rosters updated from %s\n", args[1], args[0], period)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <team> <name>",
		Short: "Remove an employee from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			period, err := parsePeriod(effective, mgr.Today())
			if err != nil {
				return err
			}
			if err := mgr.RemoveEmployee(args[0], args[1], period); err != nil {
				return err
			}
			fmt.Printf("Removed %q from %q, rosters updated from %s\n", args[1], args[0], period)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all employees by qualified id",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := initializeApp()
			if err != nil {
				return err
			}
			for _, emp := range mgr.Teams().AllEmployees() {
				fmt.Println(emp)
			}
			return nil
		},
	})

	return cmd
}

func holidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage holidays",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <date> <name>...",
		Short: "Add a holiday (date format YYYY-MM-DD)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if err := mgr.AddHoliday(date, name); err != nil {
				return err
			}
			fmt.Printf("Holiday %q added on %s\n", name, date.Format("2006-01-02"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <date>",
		Short: "Remove the holiday on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}
			removed, err := mgr.RemoveHoliday(date)
			if err != nil {
				return err
			}
			if removed == nil {
				fmt.Printf("No holiday on %s\n", date.Format("2006-01-02"))
				return nil
			}
			fmt.Printf("Holiday %q removed\n", removed.Name)
			return nil
		},
	})

	var from string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List holidays ascending by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := initializeApp()
			if err != nil {
				return err
			}

			holidays := mgr.Holidays().All()
			if from != "" {
				date, err := dateutil.ParseDate(from)
				if err != nil {
					return err
				}
				holidays = mgr.Holidays().ListFrom(date)
			}

			if len(holidays) == 0 {
				fmt.Println("No holidays added.")
				return nil
			}
			for _, h := range holidays {
				fmt.Printf("%s  %s\n", h.Date.Format("2006-01-02"), h.Name)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&from, "from", "", "Only list holidays on or after this date")
	cmd.AddCommand(listCmd)

	return cmd
}

func rosterCmd() *cobra.Command {
	var periodFlag string
	var teamFlag string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show and edit monthly rosters",
	}
	cmd.PersistentFlags().StringVar(&periodFlag, "period", "",
		"Roster period (YYYY-M); defaults to the current month")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the roster grid for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := initializeApp()
			if err != nil {
				return err
			}
			period, err := parsePeriod(periodFlag, mgr.Today())
			if err != nil {
				return err
			}
			table, err := mgr.EnsureTable(period)
			if err != nil {
				return err
			}

			if teamFlag != "" {
				if !mgr.Teams().HasTeam(teamFlag) {
					return fmt.Errorf("unknown team %q", teamFlag)
				}
				table = table.RowsFor(mgr.Teams().TeamEmployees(teamFlag))
			}

			printTable(table)
			return nil
		},
	}
	showCmd.Flags().StringVar(&teamFlag, "team", "", "Restrict rows to one team")
	cmd.AddCommand(showCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <employee> <day> <shift>",
		Short: "Set one cell of the roster",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}
			period, err := parsePeriod(periodFlag, mgr.Today())
			if err != nil {
				return err
			}
			day, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day %q", args[1])
			}
			shift, err := roster.ParseShift(args[2])
			if err != nil {
				return err
			}
			if _, err := mgr.EnsureTable(period); err != nil {
				return err
			}
			if err := mgr.SetShift(period, args[0], day, shift); err != nil {
				return err
			}
			fmt.Printf("%s: %s day %d -> %s\n", period, args[0], day, shift)
			return nil
		},
	})

	return cmd
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <employee>",
		Short: "Show an employee's upcoming shifts and holidays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := initializeApp()
			if err != nil {
				return err
			}

			today := mgr.Today()
			shifts := mgr.UpcomingShifts(args[0], today)
			if len(shifts) == 0 {
				fmt.Println("No upcoming shifts found.")
			} else {
				fmt.Println("Upcoming shifts:")
				for _, e := range shifts {
					fmt.Printf("  %s  %-9s  %s\n",
						e.Date.Format("2006-01-02"), e.Weekday, e.Shift)
				}
			}

			holidays := mgr.UpcomingHolidays(args[0], today)
			if len(holidays) == 0 {
				fmt.Println("No upcoming holidays assigned in the roster.")
			} else {
				fmt.Println("Upcoming holidays:")
				for _, h := range holidays {
					fmt.Printf("  %s  %s\n", h.Date.Format("2006-01-02"), h.Name)
				}
			}
			return nil
		},
	}
}

func passwdCmd() *cobra.Command {
	var newPassword string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, authMgr, err := initializeApp()
			if err != nil {
				return err
			}
			if err := requireAdmin(authMgr); err != nil {
				return err
			}

			if newPassword == "" {
				first, err := promptLine("New password: ")
				if err != nil {
					return err
				}
				second, err := promptLine("Confirm new password: ")
				if err != nil {
					return err
				}
				if first != second {
					return fmt.Errorf("passwords do not match")
				}
				newPassword = first
			}

			if err := authMgr.SetPassword(newPassword); err != nil {
				return err
			}
			fmt.Println("Password changed successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&newPassword, "new", "", "New password (prompted when omitted)")
	return cmd
}

// requireAdmin verifies the admin password from the --password flag,
// prompting on stdin when the flag is empty
func requireAdmin(authMgr *auth.Manager) error {
	password := adminPassword
	if password == "" {
		line, err := promptLine("Admin password: ")
		if err != nil {
			return err
		}
		password = line
	}
	return authMgr.Verify(password)
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func parsePeriod(value string, today time.Time) (roster.Period, error) {
	if value == "" {
		return roster.PeriodOf(today), nil
	}
	return roster.ParsePeriodKey(value)
}

// printTable renders the grid with weekday-labelled day headers
func printTable(table *roster.Table) {
	period := table.Period()
	if table.Len() == 0 {
		fmt.Println("No employees to display.")
		return
	}

	fmt.Printf("%-26s", "Employee")
	for day := 1; day <= table.Days(); day++ {
		name, err := dateutil.WeekdayName(period.Year, period.Month, day)
		if err != nil {
			name = "?"
		}
		fmt.Printf("%-9s", fmt.Sprintf("%d(%s)", day, name))
	}
	fmt.Println()

	for _, emp := range table.Employees() {
		fmt.Printf("%-26s", emp)
		for day := 1; day <= table.Days(); day++ {
			shift, err := table.Get(emp, day)
			if err != nil {
				continue
			}
			fmt.Printf("%-9s", shift)
		}
		fmt.Println()
	}
}
