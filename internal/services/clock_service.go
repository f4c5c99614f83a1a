package services

import (
	"context"
	"log/slog"
	"time"

	"worktime/internal/config"
	"worktime/internal/domain"
	"worktime/internal/logging"
	"worktime/internal/repository"
	"worktime/internal/validation"
)

// clockServiceImpl implements the ClockService interface
type clockServiceImpl struct {
	intervals      repository.TimeIntervalRepository
	projects       repository.ProjectRepository
	projectService ProjectService
	config         *config.Config
	validator      *validation.TimeIntervalValidator
	log            *slog.Logger
	now            func() time.Time
}

// NewClockService creates a new ClockService instance
func NewClockService(repo repository.Repository, projectService ProjectService, cfg *config.Config, logger *slog.Logger) ClockService {
	if logger == nil {
		logger = logging.Discard()
	}
	loc, err := cfg.GetLocation()
	if err != nil {
		loc = time.Local
	}
	return &clockServiceImpl{
		intervals:      repo.TimeIntervals(),
		projects:       repo.Projects(),
		projectService: projectService,
		config:         cfg,
		validator:      validation.NewTimeIntervalValidatorWithConfig(cfg),
		log:            logger,
		now:            func() time.Time { return time.Now().In(loc) },
	}
}

// ClockIn starts a new interval for the project at the given instant
func (c *clockServiceImpl) ClockIn(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error) {
	active, err := c.intervals.FindActiveByProjectID(ctx, projectID)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return c.clockIn(ctx, projectID, at, active)
}

// ClockOut stops the running interval of the project at the given instant
func (c *clockServiceImpl) ClockOut(ctx context.Context, projectID int64, at time.Time) (domain.TimeInterval, error) {
	active, err := c.intervals.FindActiveByProjectID(ctx, projectID)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return c.clockOut(ctx, projectID, at, active)
}

// ClockActivityChange toggles the project based on the stored active interval,
// never on the possibly stale intervals of the given project.
func (c *clockServiceImpl) ClockActivityChange(ctx context.Context, project domain.Project, at time.Time) (domain.Project, error) {
	current, err := c.projects.FindByID(ctx, project.ID)
	if err != nil {
		return domain.Project{}, err
	}
	if current == nil {
		return domain.Project{}, domain.ErrNoProject.WithContext("project_id", project.ID)
	}

	active, err := c.intervals.FindActiveByProjectID(ctx, current.ID)
	if err != nil {
		return domain.Project{}, err
	}

	if active != nil {
		_, err = c.clockOut(ctx, current.ID, at, active)
	} else {
		_, err = c.clockIn(ctx, current.ID, at, nil)
	}
	if err != nil {
		return domain.Project{}, err
	}

	startingPoint, err := c.config.GetStartingPoint()
	if err != nil {
		return domain.Project{}, err
	}
	return c.projectService.GetProjectTimeSince(ctx, *current, startingPoint, c.now())
}

func (c *clockServiceImpl) clockIn(ctx context.Context, projectID int64, at time.Time, active *domain.TimeInterval) (domain.TimeInterval, error) {
	if active != nil {
		return domain.TimeInterval{}, domain.ErrActiveProject.WithContext("project_id", projectID)
	}
	if err := c.validator.ValidateClockTime(projectID, at); err != nil {
		return domain.TimeInterval{}, err
	}

	interval, err := c.intervals.Add(ctx, domain.ClockInAt(projectID, at))
	if err != nil {
		return domain.TimeInterval{}, err
	}

	c.log.Info("clocked in",
		slog.Int64("project_id", projectID),
		slog.Int64("interval_id", interval.ID),
		slog.Time("at", at))
	return interval, nil
}

func (c *clockServiceImpl) clockOut(ctx context.Context, projectID int64, at time.Time, active *domain.TimeInterval) (domain.TimeInterval, error) {
	if active == nil {
		return domain.TimeInterval{}, domain.ErrInactiveProject.WithContext("project_id", projectID)
	}
	if err := c.validator.ValidateClockTime(projectID, at); err != nil {
		return domain.TimeInterval{}, err
	}

	stopped, err := active.ClockOutAt(at)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if err := c.validator.ValidateClockOut(*active, at); err != nil {
		return domain.TimeInterval{}, err
	}

	interval, err := c.intervals.Update(ctx, stopped)
	if err != nil {
		return domain.TimeInterval{}, err
	}

	c.log.Info("clocked out",
		slog.Int64("project_id", projectID),
		slog.Int64("interval_id", interval.ID),
		slog.Duration("duration", interval.Time()))
	return interval, nil
}
