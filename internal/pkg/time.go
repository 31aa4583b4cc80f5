package pkg

import "time"

// TimeLayout is the wire format for record timestamps.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
