package mood

import "time"

// TimestampLayout is the persisted timestamp format: local time, second precision.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t as local wall-clock time. The layout carries no zone, so t is
// converted to time.Local first; ParseTimestamp then yields the same instant.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

// ParseTimestamp reads a persisted timestamp in the local zone, matching how it was written.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
