package auth

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is seeded on first run so the admin can log in
// before choosing a real password
const DefaultPassword = "admin123"

var (
	ErrWrongPassword = errors.New("incorrect password")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// Manager owns admin credential verification. Only the bcrypt hash of
// the password ever touches disk.
type Manager struct {
	passwordFile string
	cost         int
	logger       *zap.Logger
}

// NewManager creates a credential manager backed by the given file
func NewManager(passwordFile string, cost int, logger *zap.Logger) *Manager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Manager{
		passwordFile: passwordFile,
		cost:         cost,
		logger:       logger,
	}
}

// EnsureDefault seeds the default password when no credential file
// exists yet
func (m *Manager) EnsureDefault() error {
	if _, err := os.Stat(m.passwordFile); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat password file: %w", err)
	}

	m.logger.Info("No admin credential found, seeding default password",
		zap.String("file", m.passwordFile))
	return m.SetPassword(DefaultPassword)
}

// Verify checks a plaintext password against the stored hash
func (m *Manager) Verify(password string) error {
	hashed, err := os.ReadFile(m.passwordFile)
	if err != nil {
		return fmt.Errorf("failed to read password file: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hashed, []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// SetPassword hashes and stores a new admin password
func (m *Manager) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := os.WriteFile(m.passwordFile, hashed, 0600); err != nil {
		return fmt.Errorf("failed to write password file: %w", err)
	}

	m.logger.Info("Admin password updated",
		zap.String("file", m.passwordFile))
	return nil
}
