package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracklit/internal/logger"
)

var (
	// ErrDuplicateCategory is returned when a category title is already taken
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrNotFound is returned when a tracker or category key no longer exists
	ErrNotFound = errors.New("not found")
	// ErrPersistence is returned when storage could not commit a change
	ErrPersistence = errors.New("storage failure")
	// ErrFutureDate is returned when completion is toggled for a day after today
	ErrFutureDate = errors.New("cannot mark a future date")
	// ErrInvalidInput is returned when tracker or category input fails validation
	ErrInvalidInput = errors.New("invalid input")
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// NotFound wraps ErrNotFound with the kind and key that was looked up
func NotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}

// Duplicate wraps ErrDuplicateCategory with the offending title
func Duplicate(title string) error {
	return fmt.Errorf("%q: %w", title, ErrDuplicateCategory)
}

// Invalid wraps ErrInvalidInput with a reason
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Persistence wraps a storage error so callers can match ErrPersistence
// while the driver error stays reachable via errors.Unwrap chains.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, domain := range []error{ErrNotFound, ErrDuplicateCategory, ErrInvalidInput, ErrFutureDate, ErrPersistence} {
		if errors.Is(err, domain) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// UserMessage returns the message shown to the user for a domain error
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateCategory):
		return "A category with this title already exists"
	case errors.Is(err, ErrNotFound):
		return "The item no longer exists, refresh and try again"
	case errors.Is(err, ErrFutureDate):
		return "Trackers cannot be marked for future dates"
	case errors.Is(err, ErrPersistence):
		return "Could not save changes"
	default:
		return err.Error()
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
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
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
