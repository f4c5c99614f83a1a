package domain

import (
	"strings"
	"time"
)

// Project is a named bucket of time intervals.
// Intervals holds whatever window the caller loaded, usually the intervals
// since the configured starting point.
type Project struct {
	ID        int64
	Name      string
	Intervals []TimeInterval
}

// NewProject creates a project after trimming the name.
// An empty or whitespace-only name fails with ErrInvalidProjectName.
func NewProject(name string) (Project, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Project{}, ErrInvalidProjectName.WithContext("name", name)
	}
	return Project{Name: trimmed}, nil
}

// WithIntervals returns a copy of the project holding the given intervals.
func (p Project) WithIntervals(intervals []TimeInterval) Project {
	copied := make([]TimeInterval, len(intervals))
	copy(copied, intervals)
	p.Intervals = copied
	return p
}

// ActiveInterval returns the first running interval, if any.
func (p Project) ActiveInterval() (TimeInterval, bool) {
	for _, interval := range p.Intervals {
		if interval.IsActive() {
			return interval, true
		}
	}
	return TimeInterval{}, false
}

func (p Project) IsActive() bool {
	_, ok := p.ActiveInterval()
	return ok
}

// ClockedInSince reports when the running interval started.
func (p Project) ClockedInSince() (time.Time, bool) {
	active, ok := p.ActiveInterval()
	if !ok {
		return time.Time{}, false
	}
	return active.StartedAt(), true
}

// Elapsed returns the running time of the active interval, zero when inactive.
func (p Project) Elapsed(now time.Time) time.Duration {
	active, ok := p.ActiveInterval()
	if !ok {
		return 0
	}
	return active.Interval(now)
}

// SummarizedTime sums the closed time of every loaded interval.
func (p Project) SummarizedTime() time.Duration {
	var total time.Duration
	for _, interval := range p.Intervals {
		total += interval.Time()
	}
	return total
}

// SummarizedTimeAt sums the loaded intervals including running time up to now.
func (p Project) SummarizedTimeAt(now time.Time) time.Duration {
	var total time.Duration
	for _, interval := range p.Intervals {
		total += interval.Interval(now)
	}
	return total
}

func (p Project) String() string {
	return p.Name
}
