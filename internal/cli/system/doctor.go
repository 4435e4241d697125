package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/session"
	"github.com/julianstephens/tracklit/internal/utils"
)

type DoctorCmd struct {
	Fix bool `help:"Delete completions that belong to trackers which no longer exist."`
}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(context.Context, *cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "TUI session", warnOnly: true, run: checkSession},
		{name: "Settings", needsDB: true, run: checkSettings},
		{name: "Data validation", needsDB: true, run: cmd.checkValidation},
		{name: "Clock/timezone", run: checkClockTimezone},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for i, c := range cmd.checks() {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(cctx, ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(cctx context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(cctx); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.LoadCategories(cctx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaVersions(cctx context.Context, ctx *cli.Context) (int, int, error) {
	versioner, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return 0, 0, nil
	}
	current, latest, err := versioner.SchemaVersion(cctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(cctx context.Context, ctx *cli.Context) error {
	current, latest, err := schemaVersions(cctx, ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(cctx context.Context, ctx *cli.Context) error {
	current, latest, err := schemaVersions(cctx, ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run '%s migrate'", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(_ context.Context, ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkSession(_ context.Context, ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return nil
	}
	pid, err := session.Holder(session.LockPath(ctx.Store.GetConfigPath()))
	if err != nil {
		return err
	}
	if pid != 0 {
		return fmt.Errorf("a TUI session (pid %d) has this database open", pid)
	}
	return nil
}

func checkSettings(cctx context.Context, ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(cctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q - fix it with '%s settings --timezone'", settings.Timezone, constants.AppName)
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(cctx context.Context, ctx *cli.Context) error {
	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	result, err := b.Check(cctx)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if !result.HasConflicts() {
		return nil
	}

	if cmd.Fix {
		ctx.PerformAutomaticBackup()
		actions, err := b.Fix(cctx, result)
		for _, a := range actions {
			ctx.Printf("   %s\n", a.Action)
		}
		if err != nil {
			return err
		}
		if result, err = b.Check(cctx); err != nil {
			return err
		}
		if !result.HasConflicts() {
			return nil
		}
	}
	return fmt.Errorf("%s", result.FormatReport())
}

func checkClockTimezone(_ context.Context, _ *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
