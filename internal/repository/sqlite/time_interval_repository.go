package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"worktime/internal/domain"
	"worktime/internal/errors"
)

type timeIntervalRepository struct {
	s *Store
}

const selectTimeIntervals = `SELECT ` + timeIntervalColumns + ` FROM time_intervals`

// FindByID retrieves a time interval by ID
func (r *timeIntervalRepository) FindByID(ctx context.Context, id int64) (*domain.TimeInterval, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	row, err := QueryOptional(ctx, r.s.db, selectTimeIntervals+` WHERE id = ?`, scanTimeInterval, "time interval", id)
	if err != nil || row == nil {
		return nil, err
	}
	interval := timeIntervalFromRow(row)
	return &interval, nil
}

// FindActiveByProjectID returns the running interval of a project, if any
func (r *timeIntervalRepository) FindActiveByProjectID(ctx context.Context, projectID int64) (*domain.TimeInterval, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	return findActive(ctx, r.s.db, projectID)
}

func findActive(ctx context.Context, q Querier, projectID int64) (*domain.TimeInterval, error) {
	query := selectTimeIntervals + ` WHERE project_id = ? AND stop_ms = 0 ORDER BY start_ms DESC LIMIT 1`
	row, err := QueryOptional(ctx, q, query, scanTimeInterval, "time interval", projectID)
	if err != nil || row == nil {
		return nil, err
	}
	interval := timeIntervalFromRow(row)
	return &interval, nil
}

// Add inserts an interval. For an active interval the check for an existing
// active one and the insert share a transaction; the partial unique index
// catches anything that slips past.
func (r *timeIntervalRepository) Add(ctx context.Context, interval domain.TimeInterval) (domain.TimeInterval, error) {
	ctx, cancel := r.s.writeContext(ctx)
	defer cancel()

	err := WithTransaction(ctx, r.s.db, func(tx *sql.Tx) error {
		project, err := QueryOptional(ctx, tx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, scanProject, "project", interval.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrNoProject.WithContext("project_id", interval.ProjectID)
		}

		if interval.IsActive() {
			active, err := findActive(ctx, tx, interval.ProjectID)
			if err != nil {
				return err
			}
			if active != nil {
				return domain.ErrActiveProject.WithContext("project_id", interval.ProjectID)
			}
		}

		query := `
		INSERT INTO time_intervals (project_id, start_ms, stop_ms, registered)
		VALUES (?, ?, ?, ?)`
		id, err := ExecuteWithLastInsertID(ctx, tx, query, interval.ProjectID, interval.Start, interval.Stop, registeredToDB(interval.Registered))
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrActiveProject.WithContext("project_id", interval.ProjectID)
			}
			return err
		}
		interval.ID = id
		return nil
	})
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return interval, nil
}

// Update stores the start, stop and registered state of an interval
func (r *timeIntervalRepository) Update(ctx context.Context, interval domain.TimeInterval) (domain.TimeInterval, error) {
	updated, err := r.UpdateAll(ctx, []domain.TimeInterval{interval})
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return updated[0], nil
}

// UpdateAll updates every interval in one transaction
func (r *timeIntervalRepository) UpdateAll(ctx context.Context, intervals []domain.TimeInterval) ([]domain.TimeInterval, error) {
	ctx, cancel := r.s.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE time_intervals
	SET project_id = ?, start_ms = ?, stop_ms = ?, registered = ?
	WHERE id = ?`

	err := WithTransaction(ctx, r.s.db, func(tx *sql.Tx) error {
		for _, interval := range intervals {
			err := ExecuteWithRowsAffected(ctx, tx, query, "time interval", strconv.FormatInt(interval.ID, 10),
				interval.ProjectID, interval.Start, interval.Stop, registeredToDB(interval.Registered), interval.ID)
			if err != nil {
				if isUniqueViolation(err) {
					return domain.ErrActiveProject.WithContext("project_id", interval.ProjectID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := make([]domain.TimeInterval, len(intervals))
	copy(updated, intervals)
	return updated, nil
}

// Remove deletes a single interval
func (r *timeIntervalRepository) Remove(ctx context.Context, interval domain.TimeInterval) error {
	return r.RemoveAll(ctx, []domain.TimeInterval{interval})
}

// RemoveAll deletes every interval in one transaction. A repeated interval
// is deleted once.
func (r *timeIntervalRepository) RemoveAll(ctx context.Context, intervals []domain.TimeInterval) error {
	ctx, cancel := r.s.writeContext(ctx)
	defer cancel()

	return WithTransaction(ctx, r.s.db, func(tx *sql.Tx) error {
		seen := make(map[int64]bool, len(intervals))
		for _, interval := range intervals {
			if seen[interval.ID] {
				continue
			}
			seen[interval.ID] = true
			err := ExecuteWithRowsAffected(ctx, tx, `DELETE FROM time_intervals WHERE id = ?`,
				"time interval", strconv.FormatInt(interval.ID, 10), interval.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// FindProjectTimeSince returns intervals starting at or after since, plus a
// running interval started earlier
func (r *timeIntervalRepository) FindProjectTimeSince(ctx context.Context, projectID int64, since time.Time) ([]domain.TimeInterval, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	query := selectTimeIntervals + `
	WHERE project_id = ? AND (start_ms >= ? OR stop_ms = 0)
	ORDER BY start_ms ASC, id ASC`
	rows, err := QueryMultiple(ctx, r.s.db, query, scanTimeIntervals, "time intervals", projectID, since.UnixMilli())
	if err != nil {
		return nil, err
	}
	return timeIntervalsFromRows(rows), nil
}

func isNotFound(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}
