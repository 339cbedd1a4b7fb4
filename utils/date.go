package utils

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	return t
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}

// ISOWeek returns the ISO 8601 week number for t.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// RoundHours rounds to two decimal places, the resolution hour values are
// stored at.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
