package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 9, 10, 15, 30, 0, 0, time.UTC)

func TestParseOrderInputDays(t *testing.T) {
	got, err := ParseOrderInput("7", base)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, 7), got)

	got, err = ParseOrderInput(" 1 ", base)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, 1), got)
}

func TestParseOrderInputRejectsNonPositiveDays(t *testing.T) {
	for _, in := range []string{"0", "-3"} {
		_, err := ParseOrderInput(in, base)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestParseOrderInputDate(t *testing.T) {
	got, err := ParseOrderInput("2025-09-20", base)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, got.After(base))
}

func TestParseOrderInputRejectsPastDate(t *testing.T) {
	_, err := ParseOrderInput("2025-09-01", base)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Today's midnight already passed, so today is rejected too.
	_, err = ParseOrderInput("2025-09-10", base)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseOrderInputRejectsMalformed(t *testing.T) {
	for _, in := range []string{"abc", "7 days", "2025/09/20", ""} {
		_, err := ParseOrderInput(in, base)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestValidateTravelDate(t *testing.T) {
	got, err := ValidateTravelDate(" 2025-10-15 ", base)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", got)

	// Traveling today is still acceptable.
	got, err = ValidateTravelDate("2025-09-10", base)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-10", got)
}

func TestValidateTravelDateRejects(t *testing.T) {
	_, err := ValidateTravelDate("2025-09-09", base)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ValidateTravelDate("next week", base)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestForTrip(t *testing.T) {
	got := ForTrip("2025-10-15", base, 7)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), got)

	// Unparseable stored date falls back to the default horizon.
	got = ForTrip("some day", base, 7)
	assert.Equal(t, base.AddDate(0, 0, 7), got)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, base.AddDate(0, 0, 14), Default(base, 14))
}
