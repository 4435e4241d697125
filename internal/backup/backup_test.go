package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tracklit/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tracklit.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE categories (title TEXT PRIMARY KEY, created_at TEXT NOT NULL)`,
		`INSERT INTO categories (title, created_at) VALUES ('Health', '2024-03-01T00:00:00Z')`,
		`INSERT INTO categories (title, created_at) VALUES ('Sport', '2024-03-01T00:00:00Z')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}
	return dbPath
}

// steppingClock advances one minute per call
func steppingClock() func() time.Time {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func countCategories(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&n); err != nil {
		t.Fatalf("failed to query %s: %v", path, err)
	}
	return n
}

func TestCreateBackup(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}
	if got := countCategories(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestBackupWithNoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error when database does not exist")
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock()

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i].Timestamp.Before(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at %d", i)
		}
	}
	// the oldest five were pruned
	if backups[len(backups)-1].Timestamp.Minute() != 6 {
		t.Errorf("unexpected oldest backup %s", backups[len(backups)-1].Name)
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "tracklit-garbage.db", "other-20240301-0900.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 || backups[0].Timestamp.IsZero() || backups[0].Name == "" {
		t.Errorf("incomplete backup info: %+v", backups[0])
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want string
	}{
		{"tracklit-20240301-0915.db", true, "2024-03-01 09:15:00"},
		{"tracklit-20240301-091530.db", true, "2024-03-01 09:15:30"},
		{"tracklit-20240301-091530-3.db", true, "2024-03-01 09:15:30"},
		{"tracklit-latest.db", false, ""},
		{"tracklit-20240301-0915.sqlite", false, ""},
	}
	for _, tt := range tests {
		got, ok := parseStamp(tt.name)
		if ok != tt.ok {
			t.Errorf("parseStamp(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02 15:04:05") != tt.want {
			t.Errorf("parseStamp(%q) = %v, want %s", tt.name, got, tt.want)
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(path)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock()

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO categories (title, created_at) VALUES ('Work', '2024-03-02T00:00:00Z')"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	if got := countCategories(t, dbPath); got != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", got)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countCategories(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}

	// the pre-restore safety copy keeps the newer state
	if safety == "" {
		t.Fatal("expected a safety backup path")
	}
	if got := countCategories(t, safety); got != 3 {
		t.Errorf("expected 3 rows in safety backup, got %d", got)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups after restore, got %d", len(backups))
	}
}

func TestRestoreWithCorruptedBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(mgr.GetBackupDir(), "tracklit-20240301-0900.db")
	if err := os.WriteFile(invalid, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(invalid); err == nil {
		t.Fatal("expected restore of a corrupted backup to fail")
	}
	if got := countCategories(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d rows", got)
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	for _, in := range []string{path, filepath.Base(path)} {
		got, err := mgr.Resolve(in)
		if err != nil || got != path {
			t.Errorf("Resolve(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := mgr.Resolve("tracklit-19990101-0000.db"); err == nil {
		t.Error("expected error for unknown backup")
	}
}
