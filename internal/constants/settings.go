package constants

const (
	SettingTimezone      = "timezone"
	SettingDefaultFilter = "default_filter"

	DefaultTimezone      = "Local" // system local timezone
	DefaultFilterSetting = "all"
)
