package engine

import (
	"strings"
	"time"
)

// UnknownMonth is the trend bucket for dates that cannot be parsed.
const UnknownMonth = "Unknown"

//nolint:gochecknoglobals // Read-only layout list.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	// Unpadded month and day also accept two digits.
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1/2/06",
	"1/2/2006 15:04",
	"2006-01",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// MonthOf returns the three-letter month of a record date, or UnknownMonth.
func MonthOf(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Month().String()[:3]
		}
	}
	return UnknownMonth
}

// monthOrder lists trend buckets in display order.
//
//nolint:gochecknoglobals // Read-only.
var monthOrder = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	UnknownMonth,
}
