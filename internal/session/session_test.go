package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

// Mock Process
type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func mockProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPID := findProcessFunc, getPIDFunc
	t.Cleanup(func() {
		findProcessFunc, getPIDFunc = oldFind, oldPID
	})
	getPIDFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracklit.db.lock")
	mockProcesses(t, 100, map[int]string{200: "tracklit", 300: "other-app"})

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"live tracklit process", "200|2024-03-06T12:00:00Z", 200},
		{"process gone", "400|2024-03-06T12:00:00Z", 0},
		{"other executable", "300|2024-03-06T12:00:00Z", 0},
		{"malformed", "200", 0},
		{"invalid pid", "abc|2024-03-06T12:00:00Z", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			got, err := Holder(path)
			if err != nil {
				t.Fatalf("Holder() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Holder() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("missing lockfile", func(t *testing.T) {
		got, err := Holder(filepath.Join(t.TempDir(), "none.lock"))
		if err != nil || got != 0 {
			t.Errorf("Holder() = %d, %v, want 0, nil", got, err)
		}
	})
}

func TestAcquireAndRelease(t *testing.T) {
	path := LockPath(filepath.Join(t.TempDir(), "tracklit.db"))
	mockProcesses(t, 100, map[int]string{100: "tracklit", 200: "tracklit"})

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if pid, _ := Holder(path); pid != 100 {
		t.Errorf("Holder() = %d, want 100", pid)
	}

	// re-acquiring from the same process succeeds
	if _, err := Acquire(path); err != nil {
		t.Errorf("Acquire() by the holder error = %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lockfile should be removed")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestAcquireRejectsLiveSession(t *testing.T) {
	path := LockPath(filepath.Join(t.TempDir(), "tracklit.db"))
	mockProcesses(t, 100, map[int]string{200: "tracklit"})

	if err := os.WriteFile(path, []byte("200|2024-03-06T12:00:00Z"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Acquire(path); !errors.Is(err, ErrActive) {
		t.Errorf("Acquire() error = %v, want ErrActive", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	path := LockPath(filepath.Join(t.TempDir(), "tracklit.db"))
	mockProcesses(t, 100, map[int]string{})

	if err := os.WriteFile(path, []byte("200|2024-03-06T12:00:00Z"), 0600); err != nil {
		t.Fatal(err)
	}
	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() over stale lock error = %v", err)
	}
	defer func() { _ = lock.Release() }()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content[:4]) != "100|" {
		t.Errorf("lockfile = %q, want the current PID", content)
	}
}
