package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeInterval(t *testing.T) {
	result := NewTimeInterval(3, 1500)

	assert.Equal(t, int64(3), result.ProjectID)
	assert.Equal(t, int64(1500), result.Start)
	assert.Equal(t, int64(0), result.Stop)
	assert.Equal(t, int64(0), result.ID)
	assert.False(t, result.Registered)
	assert.True(t, result.IsActive())
}

func TestClockInAt(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_123)

	result := ClockInAt(1, at)

	assert.Equal(t, int64(1_700_000_000_123), result.Start)
	assert.True(t, result.IsActive())
}

func TestTimeInterval_ClockOutAt(t *testing.T) {
	tests := []struct {
		name        string
		start    int64
		stop     int64
		expected error
	}{
		{name: "should stop after start", start: 100, stop: 200},
		{name: "should allow stop equal to start", start: 100, stop: 100},
		{name: "should reject stop before start", start: 200, stop: 100, expected: ErrClockOutBeforeClockIn},
		{name: "should reject a stop at the epoch", start: 0, stop: 0, expected: ErrClockOutAtEpoch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			interval := TimeInterval{ID: 1, ProjectID: 1, Start: tt.start}

			// Act
			result, err := interval.ClockOutAt(time.UnixMilli(tt.stop))

			// Assert
			if tt.expected != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expected))
				assert.True(t, result.IsActive(), "failed clock out must not stop the interval")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stop, result.Stop)
			assert.False(t, result.IsActive())
			assert.True(t, interval.IsActive(), "receiver must not be modified")
		})
	}
}

func TestTimeInterval_Time(t *testing.T) {
	t.Run("should be zero while active", func(t *testing.T) {
		interval := NewTimeInterval(1, 100)

		assert.Equal(t, time.Duration(0), interval.Time())
	})

	t.Run("should measure clocked in at 100 and out at 200 as 100ms", func(t *testing.T) {
		interval, err := NewTimeInterval(1, 100).ClockOutAt(time.UnixMilli(200))
		require.NoError(t, err)

		assert.Equal(t, 100*time.Millisecond, interval.Time())
	})
}

func TestTimeInterval_Interval(t *testing.T) {
	now := time.UnixMilli(10_000)

	active := NewTimeInterval(1, 4_000)
	assert.Equal(t, 6*time.Second, active.Interval(now))

	closed := TimeInterval{ProjectID: 1, Start: 1_000, Stop: 3_000}
	assert.Equal(t, 2*time.Second, closed.Interval(now))

	future := NewTimeInterval(1, 20_000)
	assert.Equal(t, time.Duration(0), future.Interval(now))
}

func TestTimeInterval_ToggleRegistered(t *testing.T) {
	tests := []struct {
		name       string
		registered bool
	}{
		{name: "should register an unregistered interval", registered: false},
		{name: "should unregister a registered interval", registered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval := TimeInterval{ID: 2, ProjectID: 1, Start: 1, Stop: 2, Registered: tt.registered}

			once := interval.ToggleRegistered()
			twice := once.ToggleRegistered()

			assert.Equal(t, !tt.registered, once.Registered)
			assert.True(t, twice.Equal(interval))
		})
	}
}

func TestTimeInterval_MarkAsRegistered(t *testing.T) {
	interval := TimeInterval{ProjectID: 1, Start: 1, Stop: 2}

	registered := interval.MarkAsRegistered()

	assert.True(t, registered.Registered)
	assert.False(t, interval.Registered)
	assert.False(t, registered.MarkAsUnregistered().Registered)
}

func TestTimeInterval_StoppedAt(t *testing.T) {
	assert.True(t, NewTimeInterval(1, 100).StoppedAt().IsZero())

	closed := TimeInterval{ProjectID: 1, Start: 100, Stop: 250}
	assert.Equal(t, time.UnixMilli(250), closed.StoppedAt())
	assert.Equal(t, time.UnixMilli(100), closed.StartedAt())
}

func TestTimeInterval_Equal(t *testing.T) {
	a := TimeInterval{ID: 1, ProjectID: 1, Start: 1, Stop: 2}

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(a.MarkAsRegistered()))
	assert.False(t, a.Equal(TimeInterval{ID: 2, ProjectID: 1, Start: 1, Stop: 2}))
}
