package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWeekDayFromTime(t *testing.T) {
	tests := []struct {
		in   time.Weekday
		want WeekDay
	}{
		{time.Sunday, Sunday},
		{time.Monday, Monday},
		{time.Tuesday, Tuesday},
		{time.Wednesday, Wednesday},
		{time.Thursday, Thursday},
		{time.Friday, Friday},
		{time.Saturday, Saturday},
	}
	for _, tt := range tests {
		if got := WeekDayFromTime(tt.in); got != tt.want {
			t.Errorf("WeekDayFromTime(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWeekDayFromCalendarIndex(t *testing.T) {
	// Sunday=1 .. Saturday=7
	want := []WeekDay{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
	for i, w := range want {
		got, err := WeekDayFromCalendarIndex(i + 1)
		if err != nil {
			t.Fatalf("index %d: unexpected error: %v", i+1, err)
		}
		if got != w {
			t.Errorf("WeekDayFromCalendarIndex(%d) = %v, want %v", i+1, got, w)
		}
	}

	for _, bad := range []int{0, 8, -1} {
		if _, err := WeekDayFromCalendarIndex(bad); err == nil {
			t.Errorf("expected error for index %d", bad)
		}
	}
}

func TestWeekDayOrderAndNames(t *testing.T) {
	for i, d := range AllWeekDays {
		if d.Order() != i+1 {
			t.Errorf("%v.Order() = %d, want %d", d, d.Order(), i+1)
		}
	}
	if Monday.String() != "monday" || Monday.Long() != "Monday" || Monday.Short() != "Mon" {
		t.Errorf("unexpected Monday names: %q %q %q", Monday.String(), Monday.Long(), Monday.Short())
	}
	if Sunday.Short() != "Sun" {
		t.Errorf("Sunday.Short() = %q", Sunday.Short())
	}
}

func TestParseWeekDay(t *testing.T) {
	tests := []struct {
		in      string
		want    WeekDay
		wantErr bool
	}{
		{"monday", Monday, false},
		{"Mon", Monday, false},
		{" WEDNESDAY ", Wednesday, false},
		{"7", Sunday, false},
		{"1", Monday, false},
		{"0", 0, true},
		{"funday", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWeekDay(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekDayTextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]WeekDay{"day": Friday})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"day":"friday"}` {
		t.Errorf("unexpected encoding %s", data)
	}

	var out map[string]WeekDay
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["day"] != Friday {
		t.Errorf("got %v, want Friday", out["day"])
	}
}
