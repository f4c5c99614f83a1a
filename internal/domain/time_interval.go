package domain

import (
	"time"
)

// TimeInterval is a span of work on a single project.
// Start and Stop are milliseconds since the Unix epoch. A Stop of zero
// means the interval is still running.
type TimeInterval struct {
	ID         int64
	ProjectID  int64
	Start      int64
	Stop       int64
	Registered bool
}

// NewTimeInterval creates an active, unregistered interval for the project.
func NewTimeInterval(projectID int64, start int64) TimeInterval {
	return TimeInterval{
		ProjectID: projectID,
		Start:     start,
	}
}

// ClockInAt creates an active interval starting at the given instant.
func ClockInAt(projectID int64, at time.Time) TimeInterval {
	return NewTimeInterval(projectID, at.UnixMilli())
}

// IsActive returns true while the interval has not been clocked out.
func (ti TimeInterval) IsActive() bool {
	return ti.Stop == 0
}

// ClockOutAt returns a copy of the interval stopped at the given instant.
// Stopping at the epoch fails because a zero stop means active.
func (ti TimeInterval) ClockOutAt(at time.Time) (TimeInterval, error) {
	stop := at.UnixMilli()
	if stop < ti.Start {
		return ti, ErrClockOutBeforeClockIn.
			WithContext("start", ti.Start).
			WithContext("stop", stop)
	}
	if stop == 0 {
		return ti, ErrClockOutAtEpoch
	}
	ti.Stop = stop
	return ti, nil
}

func (ti TimeInterval) MarkAsRegistered() TimeInterval {
	ti.Registered = true
	return ti
}

func (ti TimeInterval) MarkAsUnregistered() TimeInterval {
	ti.Registered = false
	return ti
}

// ToggleRegistered flips the registered flag.
func (ti TimeInterval) ToggleRegistered() TimeInterval {
	if ti.Registered {
		return ti.MarkAsUnregistered()
	}
	return ti.MarkAsRegistered()
}

// Time returns the closed duration of the interval, zero while active.
func (ti TimeInterval) Time() time.Duration {
	if ti.IsActive() {
		return 0
	}
	return time.Duration(ti.Stop-ti.Start) * time.Millisecond
}

// Interval returns the duration up to now for an active interval and the
// closed duration otherwise.
func (ti TimeInterval) Interval(now time.Time) time.Duration {
	if !ti.IsActive() {
		return ti.Time()
	}
	elapsed := now.UnixMilli() - ti.Start
	if elapsed < 0 {
		return 0
	}
	return time.Duration(elapsed) * time.Millisecond
}

func (ti TimeInterval) StartedAt() time.Time {
	return time.UnixMilli(ti.Start)
}

// StoppedAt returns the zero time for an active interval.
func (ti TimeInterval) StoppedAt() time.Time {
	if ti.IsActive() {
		return time.Time{}
	}
	return time.UnixMilli(ti.Stop)
}

func (ti TimeInterval) Equal(other TimeInterval) bool {
	return ti == other
}
