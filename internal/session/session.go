// Package session guards a database file against two TUI sessions at once.
// Each session writes a lockfile next to the database; a lockfile whose
// process is gone, or is not tracklit, is stale and gets replaced.
package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getPIDFunc      = os.Getpid
)

// ErrActive is returned by Acquire while another live session holds the lock
var ErrActive = errors.New("another tracklit session is using this database")

type Lock struct {
	path string
}

// LockPath returns the lockfile for a database file
func LockPath(dbPath string) string {
	return dbPath + ".lock"
}

// Holder returns the PID of the live tracklit process holding the lockfile,
// or 0 when the lockfile is missing or stale.
func Holder(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read lockfile: %w", err)
	}

	// pid|started
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		logger.Debug("Ignoring malformed lockfile", "path", path)
		return 0, nil
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		logger.Debug("Ignoring lockfile with invalid PID", "path", path)
		return 0, nil
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, nil
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		logger.Debug("Lockfile PID belongs to another program", "pid", pid, "executable", process.Executable())
		return 0, nil
	}
	return pid, nil
}

// Acquire takes the lock for the current process
func Acquire(path string) (*Lock, error) {
	pid, err := Holder(path)
	if err != nil {
		return nil, err
	}
	if pid != 0 && pid != getPIDFunc() {
		return nil, fmt.Errorf("%w (pid %d)", ErrActive, pid)
	}

	content := fmt.Sprintf("%d|%s", getPIDFunc(), time.Now().Format(constants.TimestampFormat))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
