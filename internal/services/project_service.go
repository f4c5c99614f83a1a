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

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	projects  repository.ProjectRepository
	intervals repository.TimeIntervalRepository
	validator *validation.ProjectValidator
	log       *slog.Logger
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo repository.Repository, cfg *config.Config, logger *slog.Logger) ProjectService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &projectServiceImpl{
		projects:  repo.Projects(),
		intervals: repo.TimeIntervals(),
		validator: validation.NewProjectValidatorWithConfig(cfg),
		log:       logger,
	}
}

// CreateProject creates a project with a unique, case-insensitive name
func (p *projectServiceImpl) CreateProject(ctx context.Context, name string) (domain.Project, error) {
	project, err := domain.NewProject(name)
	if err != nil {
		return domain.Project{}, err
	}
	if err := p.validator.ValidateProjectName(project.Name); err != nil {
		return domain.Project{}, err
	}

	existing, err := p.projects.FindByName(ctx, project.Name)
	if err != nil {
		return domain.Project{}, err
	}
	if existing != nil {
		return domain.Project{}, domain.ErrProjectAlreadyExists.WithContext("name", project.Name)
	}

	created, err := p.projects.Add(ctx, project)
	if err != nil {
		return domain.Project{}, err
	}

	p.log.Info("project created", slog.Int64("project_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// GetProjects returns every project with its intervals since the starting point
func (p *projectServiceImpl) GetProjects(ctx context.Context, startingPoint domain.StartingPoint, now time.Time) ([]domain.Project, error) {
	if !startingPoint.IsValid() {
		return nil, domain.ErrInvalidStartingPoint.WithContext("starting_point", int(startingPoint))
	}

	projects, err := p.projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Project, 0, len(projects))
	for _, project := range projects {
		withTime, err := p.GetProjectTimeSince(ctx, project, startingPoint, now)
		if err != nil {
			return nil, err
		}
		result = append(result, withTime)
	}
	return result, nil
}

// GetProject retrieves a project by its ID, without intervals
func (p *projectServiceImpl) GetProject(ctx context.Context, id int64) (domain.Project, error) {
	if err := p.validator.ValidateProjectID(id); err != nil {
		return domain.Project{}, err
	}

	project, err := p.projects.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNoProject.WithContext("project_id", id)
	}
	return *project, nil
}

// GetProjectTimeSince attaches the intervals started since the starting point,
// plus a running one
func (p *projectServiceImpl) GetProjectTimeSince(ctx context.Context, project domain.Project, startingPoint domain.StartingPoint, now time.Time) (domain.Project, error) {
	if !startingPoint.IsValid() {
		return domain.Project{}, domain.ErrInvalidStartingPoint.WithContext("starting_point", int(startingPoint))
	}

	intervals, err := p.intervals.FindProjectTimeSince(ctx, project.ID, startingPoint.Since(now))
	if err != nil {
		return domain.Project{}, err
	}
	return project.WithIntervals(intervals), nil
}

// RemoveProject deletes a project and all of its time
func (p *projectServiceImpl) RemoveProject(ctx context.Context, id int64) error {
	project, err := p.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if err := p.projects.Remove(ctx, project); err != nil {
		return err
	}

	p.log.Info("project removed", slog.Int64("project_id", id), slog.String("name", project.Name))
	return nil
}
