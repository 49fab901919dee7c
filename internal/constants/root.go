package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "omayami"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/omayami/omayami.db"
	Version            = "v0.3.0"

	// Storage keys. These match the keys the browser build used in localStorage so an
	// exported collection can be imported verbatim.
	PostsKey      = "omayami-posts"
	AISettingsKey = "omayami-ai-settings"

	// TimestampFormat mirrors the millisecond ISO-8601 form records have always
	// been written in, e.g. 2024-05-01T09:30:00.000Z.
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
	DateFormat      = "Jan 2, 2006"

	// PreviewMaxRunes is the length of the content preview on a post card
	PreviewMaxRunes = 80

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "omayami-"
	BackupFileSuffix = ".db"

	// Relative date thresholds
	RecentThreshold = time.Minute
	WeekThreshold   = 7 * 24 * time.Hour
)

// Session States
const (
	StateList SessionState = iota
	StateDetail
	StateSettings
	StateNewPost
	StateReply
	StateEditSettings
	StateAccessCode
	StateChatInput
)
