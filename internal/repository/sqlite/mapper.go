package sqlite

import (
	"worktime/internal/domain"
)

func projectFromRow(row *projectRow) domain.Project {
	return domain.Project{
		ID:   row.ID,
		Name: row.Name,
	}
}

func projectsFromRows(rows []*projectRow) []domain.Project {
	projects := make([]domain.Project, len(rows))
	for i, row := range rows {
		projects[i] = projectFromRow(row)
	}
	return projects
}

func timeIntervalFromRow(row *timeIntervalRow) domain.TimeInterval {
	return domain.TimeInterval{
		ID:         row.ID,
		ProjectID:  row.ProjectID,
		Start:      row.StartMs,
		Stop:       row.StopMs,
		Registered: row.Registered != 0,
	}
}

func timeIntervalsFromRows(rows []*timeIntervalRow) []domain.TimeInterval {
	intervals := make([]domain.TimeInterval, len(rows))
	for i, row := range rows {
		intervals[i] = timeIntervalFromRow(row)
	}
	return intervals
}

// registeredToDB stores the flag as an INTEGER column.
func registeredToDB(registered bool) int {
	if registered {
		return 1
	}
	return 0
}
