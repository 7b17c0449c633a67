// Package expiry computes listing expiry timestamps and sweeps expired
// listings in the background.
package expiry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted from users.
const DateLayout = "2006-01-02"

// ErrInvalidInput reports expiry input that must be re-prompted: malformed,
// zero/negative day counts, or dates that are not in the future.
var ErrInvalidInput = errors.New("expiry: invalid input")

// ParseOrderInput turns an order expiry answer into an absolute expiry time.
// Accepted forms: a positive integer (days from now) or a future calendar
// date in YYYY-MM-DD form.
func ParseOrderInput(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidInput)
	}

	if days, err := strconv.Atoi(s); err == nil {
		if days <= 0 {
			return time.Time{}, fmt.Errorf("%w: day count %d", ErrInvalidInput, days)
		}
		return now.AddDate(0, 0, days), nil
	}

	t, err := time.ParseInLocation(DateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	if !t.After(now) {
		return time.Time{}, fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, s)
	}
	return t, nil
}

// ValidateTravelDate checks a trip travel date answer. Only YYYY-MM-DD is
// accepted, and the date may not lie before today. The normalized string is
// returned for storage.
func ValidateTravelDate(input string, now time.Time) (string, error) {
	s := strings.TrimSpace(input)
	t, err := time.ParseInLocation(DateLayout, s, now.Location())
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	// The day after the travel date must still be ahead of now, so traveling
	// today remains acceptable.
	if !t.AddDate(0, 0, 1).After(now) {
		return "", fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, s)
	}
	return t.Format(DateLayout), nil
}

// ForTrip derives a trip listing's expiry: the day after travel. If the
// stored date string no longer parses, the listing gets a default horizon
// from now instead.
func ForTrip(dateStr string, now time.Time, defaultDays int) time.Time {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(dateStr), now.Location())
	if err != nil {
		return Default(now, defaultDays)
	}
	return t.AddDate(0, 0, 1)
}

// Default returns the flat expiry used when a listing carries no explicit
// expiry input.
func Default(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}
