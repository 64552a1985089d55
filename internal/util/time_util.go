package util

import (
	"time"
)

const MonthLayout = "2006-01"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// StartOfYear and EndOfYear bound the daily data needed for a
// projection covering [startYear, endYear)
func StartOfYear(year int) time.Time {
	return NewDate(year, 1, 1)
}

func EndOfYear(year int) time.Time {
	return NewDate(year, 12, 31)
}

// PreviousMonth returns the calendar month before (year, month)
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
