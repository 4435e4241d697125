package models

// Settings represents application-wide settings
type Settings struct {
	Timezone      string     `json:"timezone"`       // IANA timezone name, or "Local" for the system timezone
	DefaultFilter FilterMode `json:"default_filter"` // filter mode used when none is given
}
