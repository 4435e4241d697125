package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewScheduleDedupesAndSorts(t *testing.T) {
	s := NewSchedule(Sunday, Monday, Wednesday, Monday, WeekDay(9))
	want := Schedule{Monday, Wednesday, Sunday}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("NewSchedule() = %v, want %v", s, want)
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		in      string
		want    Schedule
		wantErr bool
	}{
		{"", Schedule{}, false},
		{"daily", Schedule{}, false},
		{"mon,wed", Schedule{Monday, Wednesday}, false},
		{"Wed, mon, wed", Schedule{Monday, Wednesday}, false},
		{"weekdays", Schedule{Monday, Tuesday, Wednesday, Thursday, Friday}, false},
		{"weekends", Schedule{Saturday, Sunday}, false},
		{"mon,,fri", Schedule{Monday, Friday}, false},
		{"mon,someday", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSchedule(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSchedule(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSchedule(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScheduleString(t *testing.T) {
	if got := (Schedule{}).String(); got != "every day" {
		t.Errorf("empty schedule String() = %q", got)
	}
	if got := NewSchedule(Wednesday, Monday).String(); got != "Mon, Wed" {
		t.Errorf("String() = %q, want %q", got, "Mon, Wed")
	}
	if got := NewSchedule(AllWeekDays...).String(); got != "every day of the week" {
		t.Errorf("full week String() = %q", got)
	}
}

func TestScheduleJSON(t *testing.T) {
	data, err := json.Marshal(NewSchedule(Friday, Monday))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["monday","friday"]` {
		t.Errorf("unexpected encoding %s", data)
	}

	var s Schedule
	if err := json.Unmarshal([]byte(`["sunday","holiday","monday","sunday"]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(s, Schedule{Monday, Sunday}) {
		t.Errorf("decoded %v, want [Monday Sunday]", s)
	}

	if err := json.Unmarshal([]byte(`{"bad":true}`), &s); err == nil {
		t.Error("expected error for non-array schedule")
	}
}
