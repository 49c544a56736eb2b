package constants

import "time"

const (
	AppName           = "dharmalog"
	DefaultConfigPath = "~/.config/dharmalog/dharmalog.json"
	Version           = "v0.3.0"

	// KeyringBackupUser is the keyring account under which the optional
	// backup passphrase is stored.
	KeyringBackupUser = "backup-passphrase"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dharmalog-"

	// ExportDirName is the directory (under the config dir) that shared and
	// exported files are written to.
	ExportDirName = "exports"

	// Notify constants
	NotifierLockfileName   = "dharmalog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.dharmalog.tray"

	// StreakLookbackDays bounds the backward walk when computing streaks.
	// One year is a product policy choice, not a correctness requirement.
	StreakLookbackDays = 366

	// DeletedPracticeName is the placeholder used in exports when a record
	// references a practice that no longer exists.
	DeletedPracticeName = "(deleted practice)"
)

// Storage collection keys. The portable backup format uses these as its
// top-level object keys.
const (
	KeyReminders = "reminders"
	KeyCards     = "cards"
	KeyPractices = "practices"
	KeyRecords   = "records"
	KeyTeachings = "teachings"
	KeyImages    = "images"
	KeySettings  = "settings"
)

// StatsPeriod selects the window for statistics rollups.
type StatsPeriod string

const (
	PeriodWeek  StatsPeriod = "week"
	PeriodMonth StatsPeriod = "month"
	PeriodAll   StatsPeriod = "all"
)

// RepeatType describes how a reminder recurs.
type RepeatType string

const (
	RepeatNone   RepeatType = "none"
	RepeatDaily  RepeatType = "daily"
	RepeatWeekly RepeatType = "weekly"
)

const (
	// NotifyRetryDelay is the pause between notification delivery attempts.
	NotifyRetryDelay = 100 * time.Millisecond
	NotifyMaxRetries = 3
)
