package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{name: "domain error", err: NotFound("tracker", "abc"), expected: `Error: tracker "abc": not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "trackers")
	if got != "Error: failed to load trackers" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestPersistenceWrapping(t *testing.T) {
	driverErr := errors.New("disk I/O error")
	err := Persistence("insert record", driverErr)

	if !errors.Is(err, ErrPersistence) {
		t.Error("expected ErrPersistence in chain")
	}
	if !errors.Is(err, driverErr) {
		t.Error("expected driver error in chain")
	}
	if !strings.Contains(err.Error(), "insert record") {
		t.Errorf("expected operation in message, got %q", err.Error())
	}

	if Persistence("noop", nil) != nil {
		t.Error("Persistence(nil) should be nil")
	}

	// Domain errors pass through untouched
	nf := NotFound("category", "Health")
	if got := Persistence("rename", nf); got != nf {
		t.Errorf("expected not-found error to pass through, got %v", got)
	}
	dup := Duplicate("Health")
	if got := Persistence("create", dup); !errors.Is(got, ErrDuplicateCategory) || errors.Is(got, ErrPersistence) {
		t.Errorf("expected duplicate error to pass through, got %v", got)
	}
	inv := Invalid("name is required")
	if got := Persistence("update", inv); got != inv {
		t.Errorf("expected invalid input error to pass through, got %v", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"duplicate", Duplicate("Health"), "A category with this title already exists"},
		{"not found", NotFound("tracker", "x"), "The item no longer exists, refresh and try again"},
		{"future", ErrFutureDate, "Trackers cannot be marked for future dates"},
		{"persistence", Persistence("save", errors.New("boom")), "Could not save changes"},
		{"invalid", Invalid("name is required"), "invalid input: name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
