package constants

// Default application settings, applied at init and whenever a loaded
// settings object is missing a value.
const (
	DefaultTheme                = "light"
	DefaultLanguage             = "en-US"
	DefaultDailyNotification    = true
	DefaultNotificationTime     = "08:00"
	DefaultTimezone             = "Local"
	DefaultReminderTitle        = "Practice reminder"
	DefaultDailyReminderMessage = "Time for today's practice."
)
