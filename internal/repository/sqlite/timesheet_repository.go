package sqlite

import (
	"context"

	"worktime/internal/domain"
)

type timesheetRepository struct {
	s *Store
}

// GetTimesheet returns the page of days with every interval of the project
func (r *timesheetRepository) GetTimesheet(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error) {
	return r.timesheet(ctx, projectID, page, selectTimeIntervals+`
	WHERE project_id = ?
	ORDER BY start_ms DESC, id DESC`)
}

// GetTimesheetWithoutRegisteredEntries leaves registered intervals out before
// days are paged, so a fully registered day does not take up a slot
func (r *timesheetRepository) GetTimesheetWithoutRegisteredEntries(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error) {
	return r.timesheet(ctx, projectID, page, selectTimeIntervals+`
	WHERE project_id = ? AND registered = 0
	ORDER BY start_ms DESC, id DESC`)
}

// Days are calendar days in the store's location, which SQLite cannot
// compute reliably, so grouping and paging happen after the query.
func (r *timesheetRepository) timesheet(ctx context.Context, projectID int64, page domain.PageRequest, query string) (map[domain.Day][]domain.TimesheetItem, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	rows, err := QueryMultiple(ctx, r.s.db, query, scanTimeIntervals, "time intervals", projectID)
	if err != nil {
		return nil, err
	}
	raw := domain.GroupIntervalsByDay(timeIntervalsFromRows(rows), r.s.loc)
	return page.SelectPage(raw), nil
}
