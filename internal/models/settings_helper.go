package models

import (
	"github.com/julianstephens/tracklit/internal/constants"
)

// DefaultSettings returns the settings written by init
func DefaultSettings() Settings {
	return Settings{
		Timezone:      constants.DefaultTimezone,
		DefaultFilter: FilterMode(constants.DefaultFilterSetting),
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Missing keys keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			if value != "" {
				settings.Timezone = value
			}
		case constants.SettingDefaultFilter:
			mode, err := ParseFilterMode(value)
			if err != nil {
				return Settings{}, err
			}
			settings.DefaultFilter = mode
		}
	}

	return settings, nil
}

// SettingsToMap converts a Settings struct to key-value pairs for storage
func SettingsToMap(s Settings) map[string]string {
	mode := s.DefaultFilter
	if mode == "" {
		mode = FilterAll
	}
	return map[string]string{
		constants.SettingTimezone:      s.Timezone,
		constants.SettingDefaultFilter: string(mode),
	}
}
