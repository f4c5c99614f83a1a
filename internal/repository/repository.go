// Package repository declares the persistence contracts the use cases depend on.
// Lookups of a single optional value return (nil, nil) when nothing matches.
package repository

import (
	"context"
	"time"

	"worktime/internal/domain"
)

// ProjectRepository stores projects.
type ProjectRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByName(ctx context.Context, name string) (*domain.Project, error)
	FindAll(ctx context.Context) ([]domain.Project, error)
	// Add persists a new project and returns it with its assigned ID.
	Add(ctx context.Context, project domain.Project) (domain.Project, error)
	// Remove deletes a project together with its time intervals.
	Remove(ctx context.Context, project domain.Project) error
}

// TimeIntervalRepository stores the time intervals of projects.
type TimeIntervalRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.TimeInterval, error)
	FindActiveByProjectID(ctx context.Context, projectID int64) (*domain.TimeInterval, error)
	// Add persists a new interval. Adding a second active interval for a
	// project fails with domain.ErrActiveProject.
	Add(ctx context.Context, interval domain.TimeInterval) (domain.TimeInterval, error)
	Update(ctx context.Context, interval domain.TimeInterval) (domain.TimeInterval, error)
	// UpdateAll applies every update or none of them.
	UpdateAll(ctx context.Context, intervals []domain.TimeInterval) ([]domain.TimeInterval, error)
	Remove(ctx context.Context, interval domain.TimeInterval) error
	RemoveAll(ctx context.Context, intervals []domain.TimeInterval) error
	// FindProjectTimeSince returns the intervals of the project that start at
	// or after since, or are still running.
	FindProjectTimeSince(ctx context.Context, projectID int64, since time.Time) ([]domain.TimeInterval, error)
}

// TimesheetRepository reads the raw, ungrouped timesheet of a project.
// The returned map holds only the days selected by the page.
type TimesheetRepository interface {
	GetTimesheet(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error)
	GetTimesheetWithoutRegisteredEntries(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error)
}

// Repository is implemented by storage adapters serving every contract
// from one underlying store.
type Repository interface {
	Projects() ProjectRepository
	TimeIntervals() TimeIntervalRepository
	Timesheets() TimesheetRepository
	Close() error
}
