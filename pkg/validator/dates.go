package validator

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar days (ISO-8601 date)
const DateLayout = "2006-01-02"

// Date error codes
const (
	CodePastCheckIn   = "past_check_in"
	CodeInvertedRange = "inverted_range"
)

// DateError describes an invalid booking date range
type DateError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DateError) Error() string {
	return e.Message
}

// ParseDate parses an ISO-8601 calendar day (2006-01-02)
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected format %s", value, DateLayout)
	}
	return t, nil
}

// ValidateDateRange checks a booking date span against the current day.
// Check-in must not be in the past and check-out must be strictly after
// check-in. Time-of-day components are truncated before comparison.
func ValidateDateRange(checkIn, checkOut, today time.Time) *DateError {
	checkIn = truncateDay(checkIn)
	checkOut = truncateDay(checkOut)
	today = truncateDay(today)

	if checkIn.Before(today) {
		return &DateError{Code: CodePastCheckIn, Message: "check-in date cannot be in the past"}
	}
	if !checkOut.After(checkIn) {
		return &DateError{Code: CodeInvertedRange, Message: "check-out date must be after check-in date"}
	}
	return nil
}

// Nights returns the number of nights between check-in and check-out
func Nights(checkIn, checkOut time.Time) int {
	return int(truncateDay(checkOut).Sub(truncateDay(checkIn)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
