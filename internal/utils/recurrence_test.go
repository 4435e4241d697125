package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
)

// 2024-03-04 is a Monday
func weekOf(t *testing.T) map[models.WeekDay]time.Time {
	t.Helper()
	monday, err := time.Parse(constants.DateFormat, "2024-03-04")
	if err != nil {
		t.Fatal(err)
	}
	days := make(map[models.WeekDay]time.Time, 7)
	for i, d := range models.AllWeekDays {
		days[d] = monday.AddDate(0, 0, i)
	}
	return days
}

func TestIsScheduled_EmptyScheduleIsEveryDay(t *testing.T) {
	tracker := models.Tracker{ID: "t1", Name: "Drink water"}
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		date := start.AddDate(0, 0, i)
		if !IsScheduled(tracker, date) {
			t.Fatalf("expected empty schedule to be due on %s", date.Format(constants.DateFormat))
		}
	}
}

func TestIsScheduled_AllWeekdaysExhaustive(t *testing.T) {
	week := weekOf(t)
	for _, scheduled := range models.AllWeekDays {
		tracker := models.Tracker{ID: "t1", Schedule: models.NewSchedule(scheduled)}
		for _, day := range models.AllWeekDays {
			want := day == scheduled
			if got := IsScheduled(tracker, week[day]); got != want {
				t.Errorf("schedule {%v} on %v: got %v, want %v", scheduled, day, got, want)
			}
		}
	}
}

func TestIsScheduled_MondayWednesday(t *testing.T) {
	tracker := models.Tracker{
		ID:       "a",
		Name:     "Tracker A",
		Schedule: models.NewSchedule(models.Monday, models.Wednesday),
	}

	tuesday, _ := time.Parse(constants.DateFormat, "2024-03-05")
	if IsScheduled(tracker, tuesday) {
		t.Error("expected tracker not to be scheduled on Tuesday")
	}

	monday, _ := time.Parse(constants.DateFormat, "2024-03-04")
	if !IsScheduled(tracker, monday) {
		t.Error("expected tracker to be scheduled on Monday")
	}
}

func TestIsScheduled_UsesDateLocation(t *testing.T) {
	tracker := models.Tracker{ID: "t", Schedule: models.NewSchedule(models.Monday)}
	// Sunday 23:30 UTC is already Monday in Moscow (UTC+3)
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Skip("timezone data unavailable")
	}
	sundayNight := time.Date(2024, 3, 3, 23, 30, 0, 0, time.UTC)
	if IsScheduled(tracker, sundayNight) {
		t.Error("expected Sunday in UTC not to match Monday schedule")
	}
	if !IsScheduled(tracker, sundayNight.In(moscow)) {
		t.Error("expected Monday in Moscow to match Monday schedule")
	}
}

func TestNextScheduled(t *testing.T) {
	week := weekOf(t)
	tracker := models.Tracker{ID: "t", Schedule: models.NewSchedule(models.Friday)}
	got := NextScheduled(tracker, week[models.Tuesday].Add(15*time.Hour))
	if !got.Equal(week[models.Friday]) {
		t.Errorf("NextScheduled() = %v, want %v", got, week[models.Friday])
	}

	daily := models.Tracker{ID: "d"}
	if got := NextScheduled(daily, week[models.Sunday]); !got.Equal(week[models.Sunday]) {
		t.Errorf("NextScheduled(daily) = %v", got)
	}
}
