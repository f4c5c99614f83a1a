package services

import (
	"context"
	"log/slog"
	"strconv"

	"worktime/internal/config"
	"worktime/internal/domain"
	apperrors "worktime/internal/errors"
	"worktime/internal/logging"
	"worktime/internal/repository"
	"worktime/internal/validation"
)

// timesheetServiceImpl implements the TimesheetService interface
type timesheetServiceImpl struct {
	timesheets repository.TimesheetRepository
	intervals  repository.TimeIntervalRepository
	validator  *validation.TimeIntervalValidator
	log        *slog.Logger
}

// NewTimesheetService creates a new TimesheetService instance
func NewTimesheetService(repo repository.Repository, cfg *config.Config, logger *slog.Logger) TimesheetService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &timesheetServiceImpl{
		timesheets: repo.Timesheets(),
		intervals:  repo.TimeIntervals(),
		validator:  validation.NewTimeIntervalValidatorWithConfig(cfg),
		log:        logger,
	}
}

// GetTimesheet returns one page of days for the project, newest first.
// Registered entries are dropped before paging when hideRegistered is set.
func (t *timesheetServiceImpl) GetTimesheet(ctx context.Context, projectID int64, offset int, hideRegistered bool) (domain.Timesheet, error) {
	if err := t.validator.ValidatePageOffset(offset); err != nil {
		return nil, err
	}

	page := domain.WithOffset(offset)
	var (
		raw map[domain.Day][]domain.TimesheetItem
		err error
	)
	if hideRegistered {
		raw, err = t.timesheets.GetTimesheetWithoutRegisteredEntries(ctx, projectID, page)
	} else {
		raw, err = t.timesheets.GetTimesheet(ctx, projectID, page)
	}
	if err != nil {
		return nil, err
	}

	return domain.GroupTimesheet(raw), nil
}

// MarkRegisteredTime flips the registered flag of each interval independently
// and stores all of them in one update. The order of the input is kept.
func (t *timesheetServiceImpl) MarkRegisteredTime(ctx context.Context, intervals []domain.TimeInterval) ([]domain.TimeInterval, error) {
	toggled := make([]domain.TimeInterval, len(intervals))
	for i, interval := range intervals {
		toggled[i] = interval.ToggleRegistered()
	}

	updated, err := t.intervals.UpdateAll(ctx, toggled)
	if err != nil {
		return nil, err
	}

	t.log.Info("toggled registered time", slog.Int("count", len(updated)))
	return updated, nil
}

// GetTimeIntervals loads the intervals with the given IDs, in the same order.
// A repeated ID is loaded once, at its first position.
func (t *timesheetServiceImpl) GetTimeIntervals(ctx context.Context, ids []int64) ([]domain.TimeInterval, error) {
	if err := t.validator.ValidateIntervalIDs(ids); err != nil {
		return nil, err
	}

	intervals := make([]domain.TimeInterval, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		interval, err := t.intervals.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if interval == nil {
			return nil, apperrors.NewNotFoundError("time interval", strconv.FormatInt(id, 10))
		}
		intervals = append(intervals, *interval)
	}
	return intervals, nil
}

// RemoveTime deletes all given intervals or none of them
func (t *timesheetServiceImpl) RemoveTime(ctx context.Context, intervals []domain.TimeInterval) error {
	if err := t.intervals.RemoveAll(ctx, intervals); err != nil {
		return err
	}

	t.log.Info("removed time", slog.Int("count", len(intervals)))
	return nil
}

// RemoveTimeByID deletes a single interval
func (t *timesheetServiceImpl) RemoveTimeByID(ctx context.Context, id int64) error {
	intervals, err := t.GetTimeIntervals(ctx, []int64{id})
	if err != nil {
		return err
	}
	if err := t.intervals.Remove(ctx, intervals[0]); err != nil {
		return err
	}

	t.log.Info("removed time", slog.Int64("interval_id", id))
	return nil
}
