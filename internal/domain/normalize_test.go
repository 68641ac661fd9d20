package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookedTimestamp_StripsOffsetAndRelocalizes(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	want := time.Date(2026, time.March, 2, 9, 0, 0, 0, loc)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "negative offset", raw: "2026-03-02T09:00:00-04:00"},
		{name: "positive offset", raw: "2026-03-02T09:00:00+05:00"},
		{name: "compact offset", raw: "2026-03-02T09:00:00-0400"},
		{name: "zulu suffix", raw: "2026-03-02T09:00:00Z"},
		{name: "no suffix", raw: "2026-03-02T09:00:00"},
		{name: "fractional seconds", raw: "2026-03-02T09:00:00.000-04:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookedTimestamp(tt.raw, loc)
			require.NoError(t, err)
			// Offset в исходнике игнорируется: настенное время локализуется как есть
			assert.True(t, want.Equal(got), "want %v, got %v", want, got)
		})
	}
}

func TestParseBookedTimestamp_Malformed(t *testing.T) {
	loc := time.UTC

	for _, raw := range []string{"", "garbage", "2026-03-02", "09:00:00"} {
		_, err := ParseBookedTimestamp(raw, loc)
		assert.ErrorIs(t, err, ErrMalformedTimestamp, "raw=%q", raw)
	}
}

func TestNewBookedRange(t *testing.T) {
	loc := time.UTC

	r, err := NewBookedRange("2026-03-02T12:00:00Z", "2026-03-02T13:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, r.Duration())

	// Конец раньше начала нарушает инвариант интервала
	_, err = NewBookedRange("2026-03-02T13:00:00Z", "2026-03-02T12:00:00Z", loc)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
