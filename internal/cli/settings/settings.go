package settings

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used to decide calendar days, or 'Local'."`
	DefaultFilter *string `help:"Filter mode used when none is given (all|today|completed|incompleted)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	settings, err := ctx.Store.GetSettings(cctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:       %s\n", settings.Timezone)
		ctx.Printf("  Default Filter: %s\n", settings.DefaultFilter)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultFilter != nil {
		mode, err := models.ParseFilterMode(*c.DefaultFilter)
		if err != nil {
			return err
		}
		settings.DefaultFilter = mode
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(cctx, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
