package models

// Settings represents application-wide settings
type Settings struct {
	Theme             string `json:"theme"`              // UI theme name ("light" or "dark")
	Language          string `json:"language"`           // BCP 47 language tag
	DailyNotification bool   `json:"daily_notification"` // whether the daily practice reminder is enabled
	NotificationTime  string `json:"notification_time"`  // HH:MM time of the daily reminder
	Timezone          string `json:"timezone"`           // IANA timezone name, or "Local" for the system timezone
}

// Backup is a portable snapshot of every stored collection. Its JSON form is
// the backup file format: one object whose top-level keys are the collection
// names.
type Backup struct {
	Reminders []Reminder `json:"reminders"`
	Cards     []Card     `json:"cards"`
	Practices []Practice `json:"practices"`
	Records   []Record   `json:"records"`
	Teachings []Teaching `json:"teachings"`
	Images    []Image    `json:"images"`
	Settings  Settings   `json:"settings"`
}
