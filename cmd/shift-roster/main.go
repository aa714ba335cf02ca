package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/shift-roster/internal/auth"
	"github.com/username/shift-roster/internal/config"
	"github.com/username/shift-roster/internal/manager"
	"github.com/username/shift-roster/internal/roster"
	"github.com/username/shift-roster/internal/store"
)

var (
	configPath    string
	adminPassword string
	logger        *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shift-roster",
		Short: "Shift roster and holiday tracker",
		Long:  "Manage teams, employees, holidays and monthly shift rosters from the terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&adminPassword, "password", "p", "", "Admin password for mutating commands")

	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(teamCmd())
	rootCmd.AddCommand(employeeCmd())
	rootCmd.AddCommand(holidayCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(passwdCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initializeApp wires the store, credential manager and roster manager
func initializeApp() (*manager.Manager, *auth.Manager, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	st := store.NewStore(cfg.Storage.DataFile, logger)
	state, err := st.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load state: %w", err)
	}

	authMgr := auth.NewManager(cfg.Storage.PasswordFile, cfg.Auth.BcryptCost, logger)
	if err := authMgr.EnsureDefault(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize admin credential: %w", err)
	}

	def, err := roster.ParseShift(cfg.Roster.DefaultShift)
	if err != nil {
		return nil, nil, err
	}

	return manager.NewManager(state, st, def, cfg.Location(), logger), authMgr, nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
