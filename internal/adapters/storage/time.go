package storage

import (
	"fmt"
	"time"
)

// timeFormats are the accepted SQLite text timestamp layouts, newest first.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses a timestamp stored as TEXT by any of the stores.
// POST: Returns the parsed time or an error if no layout matches
func ParseTime(s string) (time.Time, error) {
	for _, f := range timeFormats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}

// FormatTime renders a timestamp for TEXT storage.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
