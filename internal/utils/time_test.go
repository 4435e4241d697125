package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Europe/Moscow", timezone: "Europe/Moscow", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	utc := time.UTC
	got, err := ParseDateInLocation("2024-03-01", utc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 1 {
		t.Errorf("ParseDateInLocation() = %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != utc {
		t.Errorf("ParseDateInLocation() should be midnight UTC, got %v", got)
	}

	for _, bad := range []string{"2024/03/01", "2024-13-01", ""} {
		if _, err := ParseDateInLocation(bad, utc); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "empty is today", in: "", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "today keyword", in: "today", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday keyword", in: "yesterday", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "explicit date", in: "2024-02-14", want: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)},
		{name: "bad date", in: "14.02.2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(tt.in, now, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ResolveDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsAfterDay(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		a    time.Time
		want bool
	}{
		{"same day later time", time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), false},
		{"same day earlier time", time.Date(2024, 3, 1, 0, 1, 0, 0, time.UTC), false},
		{"next day", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{"previous day", time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), false},
		{"next year earlier month", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAfterDay(tt.a, base, time.UTC); got != tt.want {
				t.Errorf("IsAfterDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Asia/Tokyo", true},
		{"Invalid/Timezone", false},
		{"not-a-timezone", false},
	}
	for _, tt := range tests {
		if got := ValidateTimezone(tt.timezone); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
		}
	}
}
