package types

import "time"

// DateLayout is the ISO-8601 calendar date stored on invoices
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Clock returns the current time; replaced in tests
type Clock func() time.Time

// SystemClock is the wall clock in UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}
