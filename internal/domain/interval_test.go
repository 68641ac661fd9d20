package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, startHour, startMin, endHour, endMin int) TimeRange {
	t.Helper()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	r, err := NewTimeRange(
		day.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
		day.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
	)
	require.NoError(t, err)
	return r
}

func TestNewTimeRange_Invariant(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeRange(now, now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange(now.Add(time.Hour), now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange(time.Time{}, now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	r, err := NewTimeRange(now, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, r.Duration())
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{
			name: "partial overlap",
			a:    mustRange(t, 11, 30, 12, 0),
			b:    mustRange(t, 11, 20, 11, 40),
			want: true,
		},
		{
			name: "containment",
			a:    mustRange(t, 9, 0, 17, 0),
			b:    mustRange(t, 12, 0, 13, 0),
			want: true,
		},
		{
			name: "touching end-to-start is not overlap",
			a:    mustRange(t, 11, 0, 11, 30),
			b:    mustRange(t, 11, 30, 12, 0),
			want: false,
		},
		{
			name: "touching start-to-end is not overlap",
			a:    mustRange(t, 12, 0, 12, 30),
			b:    mustRange(t, 11, 30, 12, 0),
			want: false,
		},
		{
			name: "disjoint",
			a:    mustRange(t, 9, 0, 10, 0),
			b:    mustRange(t, 14, 0, 15, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Предикат симметричен
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_Expand(t *testing.T) {
	r := mustRange(t, 9, 0, 12, 0)
	buffered := r.Expand(15 * time.Minute)

	assert.Equal(t, r.Start.Add(-15*time.Minute), buffered.Start)
	assert.Equal(t, r.End.Add(15*time.Minute), buffered.End)

	// Буферизованное окно цепляет бронирование, которого сам слот не касается
	booking := mustRange(t, 12, 0, 13, 0)
	assert.False(t, r.Overlaps(booking))
	assert.True(t, buffered.Overlaps(booking))
}
