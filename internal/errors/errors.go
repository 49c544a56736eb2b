package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/dharmalog/dharmalog/internal/logger"
)

// Sentinel errors for the application's failure taxonomy. Callers classify
// with errors.Is; wrap with the helpers below.
var (
	// ErrInvalidArgument marks malformed caller input (non-positive amount,
	// missing required field).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a referenced entity missing from the current snapshot.
	ErrNotFound = errors.New("not found")
	// ErrFormat marks a backup or import payload with invalid structure.
	ErrFormat = errors.New("invalid format")
	// ErrStorage marks a persistence failure.
	ErrStorage = errors.New("storage error")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted detail message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Formatf wraps ErrFormat with a formatted detail message.
func Formatf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}
