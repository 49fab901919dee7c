package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/omayami/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested name
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Secret names the keyring entries omayami knows about.
var Secrets = []string{
	constants.DefaultKeyringUser,
	constants.KeyringAccessCode,
	constants.KeyringOpenAIKey,
}

// Get retrieves a named secret from the OS keyring.
func Get(name string) (string, error) {
	value, err := keyring.Get(constants.AppName, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores a named secret in the OS keyring.
func Set(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if err := keyring.Set(constants.AppName, name, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", name, err)
	}
	return nil
}

// Delete removes a named secret from the OS keyring.
func Delete(name string) error {
	if err := keyring.Delete(constants.AppName, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", name, err)
	}
	return nil
}

// Lookup returns value when it is non-empty, otherwise the named keyring
// secret. A missing or unavailable keyring yields "".
func Lookup(value, name string) string {
	if value != "" {
		return value
	}
	stored, err := Get(name)
	if err != nil {
		return ""
	}
	return stored
}

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	return Get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return Set(constants.DefaultKeyringUser, connStr)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// IsKnown reports whether name is one of the secrets omayami reads.
func IsKnown(name string) bool {
	for _, s := range Secrets {
		if s == name {
			return true
		}
	}
	return false
}
