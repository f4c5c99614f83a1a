package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const (
	projectColumns      = "id, name"
	timeIntervalColumns = "id, project_id, start_ms, stop_ms, registered"
)

// scanProject scans a single project from a database row
func scanProject(scanner Scanner) (*projectRow, error) {
	row := &projectRow{}
	if err := scanner.Scan(&row.ID, &row.Name); err != nil {
		return nil, err
	}
	return row, nil
}

// scanProjects scans multiple projects from database rows
func scanProjects(rows Rows) ([]*projectRow, error) {
	return scanAll(rows, scanProject)
}

// scanTimeInterval scans a single time interval from a database row
func scanTimeInterval(scanner Scanner) (*timeIntervalRow, error) {
	row := &timeIntervalRow{}
	err := scanner.Scan(
		&row.ID,
		&row.ProjectID,
		&row.StartMs,
		&row.StopMs,
		&row.Registered,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// scanTimeIntervals scans multiple time intervals from database rows
func scanTimeIntervals(rows Rows) ([]*timeIntervalRow, error) {
	return scanAll(rows, scanTimeInterval)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		result, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
