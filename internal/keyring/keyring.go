package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/dharmalog/dharmalog/internal/constants"
)

var (
	// ErrNotFound is returned when no passphrase is stored in the keyring
	ErrNotFound = errors.New("passphrase not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetBackupPassphrase retrieves the backup encryption passphrase from the OS
// keyring. Returns ErrNotFound if none is stored.
func GetBackupPassphrase() (string, error) {
	passphrase, err := keyring.Get(constants.AppName, constants.KeyringBackupUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return passphrase, nil
}

// SetBackupPassphrase stores the backup encryption passphrase in the OS keyring.
func SetBackupPassphrase(passphrase string) error {
	if passphrase == "" {
		return errors.New("passphrase cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.KeyringBackupUser, passphrase); err != nil {
		return fmt.Errorf("failed to store passphrase in keyring: %w", err)
	}
	return nil
}

// DeleteBackupPassphrase removes the backup encryption passphrase from the OS
// keyring.
func DeleteBackupPassphrase() error {
	err := keyring.Delete(constants.AppName, constants.KeyringBackupUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete passphrase from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is usable on the current system.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
