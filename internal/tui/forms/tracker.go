// Package forms holds the huh forms shared by the TUI and the interactive CLI.
package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
)

// TrackerFormModel is the value bound to the tracker form
type TrackerFormModel struct {
	Name     string
	Category string
	Emoji    string
	Color    string
	Days     []models.WeekDay
}

// FromTracker prefills the form with an existing tracker
func FromTracker(t models.Tracker) *TrackerFormModel {
	return &TrackerFormModel{
		Name:     t.Name,
		Category: t.Category,
		Emoji:    t.Emoji,
		Color:    t.Color,
		Days:     append([]models.WeekDay(nil), t.Schedule...),
	}
}

// Input converts the form values for the board
func (fm *TrackerFormModel) Input() board.TrackerInput {
	return board.TrackerInput{
		Name:     fm.Name,
		Category: fm.Category,
		Emoji:    fm.Emoji,
		Color:    fm.Color,
		Schedule: models.NewSchedule(fm.Days...),
	}
}

func validateTitle(kind string, max int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%s cannot be empty", kind)
		}
		if utf8.RuneCountInString(s) > max {
			return fmt.Errorf("%s is limited to %d characters", kind, max)
		}
		return nil
	}
}

// NewTrackerForm builds the add/edit tracker form. categories are offered as
// suggestions; any other title creates a new category.
func NewTrackerForm(fm *TrackerFormModel, categories []string) *huh.Form {
	emojis := []huh.Option[string]{huh.NewOption("none", "")}
	for _, e := range constants.Emojis {
		emojis = append(emojis, huh.NewOption(e, e))
	}
	colors := []huh.Option[string]{huh.NewOption("none", "")}
	for _, c := range constants.Colors {
		colors = append(colors, huh.NewOption(c, c))
	}
	days := make([]huh.Option[models.WeekDay], 0, len(models.AllWeekDays))
	for _, d := range models.AllWeekDays {
		days = append(days, huh.NewOption(d.Long(), d).Selected(containsDay(fm.Days, d)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tracker Name").
				Value(&fm.Name).
				Validate(validateTitle("tracker name", constants.MaxTrackerNameLen)),
			huh.NewInput().
				Title("Category").
				Description("An existing category or a new title").
				Suggestions(categories).
				Value(&fm.Category).
				Validate(validateTitle("category", constants.MaxCategoryNameLen)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Emoji").
				Options(emojis...).
				Value(&fm.Emoji),
			huh.NewSelect[string]().
				Title("Color").
				Options(colors...).
				Value(&fm.Color),
			huh.NewMultiSelect[models.WeekDay]().
				Title("Schedule").
				Description("Leave empty for every day").
				Options(days...).
				Value(&fm.Days),
		),
	).WithTheme(huh.ThemeDracula())
}

func containsDay(days []models.WeekDay, d models.WeekDay) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}
