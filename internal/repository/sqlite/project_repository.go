package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"worktime/internal/domain"
)

type projectRepository struct {
	s *Store
}

// FindByID retrieves a project by ID
func (r *projectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row, err := QueryOptional(ctx, r.s.db, query, scanProject, "project", id)
	if err != nil || row == nil {
		return nil, err
	}
	project := projectFromRow(row)
	return &project, nil
}

// FindByName matches names case-insensitively
func (r *projectRepository) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE name = ? COLLATE NOCASE`
	row, err := QueryOptional(ctx, r.s.db, query, scanProject, "project", name)
	if err != nil || row == nil {
		return nil, err
	}
	project := projectFromRow(row)
	return &project, nil
}

// FindAll lists projects ordered by name
func (r *projectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := r.s.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name COLLATE NOCASE ASC, id ASC`
	rows, err := QueryMultiple(ctx, r.s.db, query, scanProjects, "projects")
	if err != nil {
		return nil, err
	}
	return projectsFromRows(rows), nil
}

// Add creates a new project
func (r *projectRepository) Add(ctx context.Context, project domain.Project) (domain.Project, error) {
	ctx, cancel := r.s.writeContext(ctx)
	defer cancel()

	id, err := ExecuteWithLastInsertID(ctx, r.s.db, `INSERT INTO projects (name) VALUES (?)`, project.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Project{}, domain.ErrProjectAlreadyExists.WithContext("name", project.Name)
		}
		return domain.Project{}, err
	}

	project.ID = id
	project.Intervals = nil
	return project, nil
}

// Remove deletes the project and its intervals in one transaction
func (r *projectRepository) Remove(ctx context.Context, project domain.Project) error {
	ctx, cancel := r.s.writeContext(ctx)
	defer cancel()

	return WithTransaction(ctx, r.s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM time_intervals WHERE project_id = ?`, project.ID); err != nil {
			return HandleDatabaseError("delete project intervals", err)
		}
		err := ExecuteWithRowsAffected(ctx, tx, `DELETE FROM projects WHERE id = ?`, "project", strconv.FormatInt(project.ID, 10), project.ID)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrNoProject.WithContext("project_id", project.ID)
			}
			return err
		}
		return nil
	})
}
