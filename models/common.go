package models

import (
	"time"
)

// Common date helpers used across models and the change log.

// FormatDate formats a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateRU formats a time as DD.MM.YYYY for user-facing output
func FormatDateRU(t time.Time) string {
	return t.Format("02.01.2006")
}

// ParseDate parses a YYYY-MM-DD string into a time.Time
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// Today returns the current date truncated to midnight local time
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
