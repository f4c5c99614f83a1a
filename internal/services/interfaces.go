package services

import (
	"context"
	"log/slog"
	"time"

	"worktime/internal/config"
	"worktime/internal/domain"
	"worktime/internal/logging"
	"worktime/internal/repository"
)

// ClockService starts and stops the time intervals of projects
type ClockService interface {
	ClockIn(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error)
	ClockOut(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error)
	// ClockActivityChange clocks the project out if it is active and in otherwise.
	// The returned project carries its intervals since the configured starting point.
	ClockActivityChange(ctx context.Context, project domain.Project, at time.Time) (domain.Project, error)
}

// TimesheetService reads and edits the recorded time of a project
type TimesheetService interface {
	GetTimesheet(ctx context.Context, projectID int64, offset int, hideRegistered bool) (domain.Timesheet, error)
	MarkRegisteredTime(ctx context.Context, intervals []domain.TimeInterval) ([]domain.TimeInterval, error)
	GetTimeIntervals(ctx context.Context, ids []int64) ([]domain.TimeInterval, error)
	RemoveTime(ctx context.Context, intervals []domain.TimeInterval) error
	RemoveTimeByID(ctx context.Context, id int64) error
}

// ProjectService handles the project lifecycle
type ProjectService interface {
	CreateProject(ctx context.Context, name string) (domain.Project, error)
	GetProjects(ctx context.Context, startingPoint domain.StartingPoint, now time.Time) ([]domain.Project, error)
	GetProject(ctx context.Context, id int64) (domain.Project, error)
	GetProjectTimeSince(ctx context.Context, project domain.Project, startingPoint domain.StartingPoint, now time.Time) (domain.Project, error)
	RemoveProject(ctx context.Context, id int64) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ClockService     ClockService
	TimesheetService TimesheetService
	ProjectService   ProjectService
}

// NewServiceContainer wires every service against one repository.
// A nil logger discards log output.
func NewServiceContainer(repo repository.Repository, cfg *config.Config, logger *slog.Logger) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	projectService := NewProjectService(repo, cfg, logger)
	return &ServiceContainer{
		ClockService:     NewClockService(repo, projectService, cfg, logger),
		TimesheetService: NewTimesheetService(repo, cfg, logger),
		ProjectService:   projectService,
	}
}

// SetClock replaces the time source used when validating clock times and
// loading the intervals of a toggled project
func (s *ServiceContainer) SetClock(now func() time.Time) {
	if clock, ok := s.ClockService.(*clockServiceImpl); ok {
		clock.now = now
	}
}
