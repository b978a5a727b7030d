package timeutil

import "time"

// Dates are persisted as text in StorageLayout. DisplayLayout is only for
// user-facing output and must never reach the database.
const (
	StorageLayout = "2006-01-02 15:04:05"
	DisplayLayout = "02/01/2006 15:04"
)

// FormatStorage renders t in the storage format.
func FormatStorage(t time.Time) string {
	return t.Format(StorageLayout)
}

// ParseStorage parses a storage-format date.
func ParseStorage(s string) (time.Time, error) {
	return time.ParseInLocation(StorageLayout, s, time.Local)
}

// FormatDisplay renders t in the display format.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}
