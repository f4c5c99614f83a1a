package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"worktime/internal/logging"
)

func init() {
	RegisterGoMigration(2, Up_000002_close_duplicate_active_intervals, Down_000002_close_duplicate_active_intervals)
}

// Up_000002_close_duplicate_active_intervals leaves at most one running
// interval per project so the unique index of migration 3 can be created.
// The newest running interval stays open; each older one is stopped at the
// start of the next running interval of the same project.
func Up_000002_close_duplicate_active_intervals(ctx context.Context, tx *sql.Tx) error {
	type active struct {
		id        int64
		projectID int64
		startMs   int64
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, project_id, start_ms
		FROM time_intervals
		WHERE stop_ms = 0
		ORDER BY project_id, start_ms DESC, id DESC`)
	if err != nil {
		return fmt.Errorf("failed to query active intervals: %w", err)
	}
	var intervals []active
	for rows.Next() {
		var a active
		if err := rows.Scan(&a.id, &a.projectID, &a.startMs); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan active interval: %w", err)
		}
		intervals = append(intervals, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating active intervals: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, "UPDATE time_intervals SET stop_ms = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare stop update statement: %w", err)
	}
	defer stmt.Close()

	closed := 0
	for i := 1; i < len(intervals); i++ {
		newer, older := intervals[i-1], intervals[i]
		if newer.projectID != older.projectID {
			continue
		}
		stop := newer.startMs
		if stop <= older.startMs {
			// stop_ms = 0 means running, so a zero-length interval ends 1ms later.
			stop = older.startMs + 1
		}
		if _, err := stmt.ExecContext(ctx, stop, older.id); err != nil {
			return fmt.Errorf("failed to close interval %d: %w", older.id, err)
		}
		closed++
	}

	if closed > 0 {
		logging.Debugf("closed %d duplicate active intervals\n", closed)
	}
	return nil
}

// Down_000002_close_duplicate_active_intervals is a no-op: the closed
// intervals are indistinguishable from ones stopped by the user.
func Down_000002_close_duplicate_active_intervals(ctx context.Context, tx *sql.Tx) error {
	return nil
}
