package constants

import "time"

const (
	AppName            = "tracklit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tracklit/tracklit.db"
	Version            = "v0.1.0"

	// ConnectionEnvVar overrides --config when set
	ConnectionEnvVar = "TRACKLIT_DB_CONNECTION"

	// StorageTimeout bounds a single CLI storage round trip
	StorageTimeout = 10 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracklit-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName    = "logs"
	LogFileName   = "tracklit.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Validation limits
	MaxTrackerNameLen  = 38
	MaxCategoryNameLen = 38
	MaxEmojiBytes      = 16
)
