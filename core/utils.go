package core

import (
	"os"
	"strings"
	"time"
)

// Timestamp layouts shared by all collections.
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// AllClubs is the sentinel club value carried by content rows visible to every
// club. It is a content-level marker only; administrator privilege is a
// property of the account role, never of this value.
const AllClubs = "전체"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

func Getwd() string {
	wd, _ := os.Getwd()
	return wd
}

// FormatTime renders t in the shared datetime layout.
func FormatTime(t time.Time) string { return t.Format(DateTimeFormat) }

// ParseTime parses a collection timestamp, accepting both the datetime and the
// date-only layouts.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(DateFormat, s)
}
