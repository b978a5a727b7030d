package model

// NotificationSettings holds per-user notification preferences. A user
// without a stored row gets the defaults.
type NotificationSettings struct {
	EmailEnabled            bool
	AppNotificationsEnabled bool
	DefaultReminderMinutes  int
}

// DefaultNotificationSettings returns the settings applied when a user has
// never saved any: everything enabled, 30 minute reminder lead.
func DefaultNotificationSettings() *NotificationSettings {
	return &NotificationSettings{
		EmailEnabled:            true,
		AppNotificationsEnabled: true,
		DefaultReminderMinutes:  30,
	}
}
