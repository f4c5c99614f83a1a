// Package memory provides an in-process adapter for the repository contracts,
// used by tests and the "memory" environment.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"worktime/internal/domain"
	apperrors "worktime/internal/errors"
	"worktime/internal/repository"
)

// Store keeps projects and intervals in maps guarded by a single mutex.
type Store struct {
	mu        sync.Mutex
	loc       *time.Location
	projects  map[int64]domain.Project
	intervals map[int64]domain.TimeInterval
	nextID    struct{ project, interval int64 }
}

// New creates an empty store grouping timesheet days in loc.
func New(loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		loc:       loc,
		projects:  make(map[int64]domain.Project),
		intervals: make(map[int64]domain.TimeInterval),
	}
}

var _ repository.Repository = (*Store)(nil)

func (s *Store) Projects() repository.ProjectRepository           { return projectRepo{s} }
func (s *Store) TimeIntervals() repository.TimeIntervalRepository { return intervalRepo{s} }
func (s *Store) Timesheets() repository.TimesheetRepository       { return timesheetRepo{s} }

func (s *Store) Close() error { return nil }

type projectRepo struct{ s *Store }

func (r projectRepo) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	project, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (r projectRepo) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if project, ok := r.s.findByNameLocked(name); ok {
		return &project, nil
	}
	return nil, nil
}

func (r projectRepo) FindAll(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	projects := make([]domain.Project, 0, len(r.s.projects))
	for _, project := range r.s.projects {
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
	})
	return projects, nil
}

func (r projectRepo) Add(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.findByNameLocked(project.Name); exists {
		return domain.Project{}, domain.ErrProjectAlreadyExists.WithContext("name", project.Name)
	}
	r.s.nextID.project++
	project.ID = r.s.nextID.project
	project.Intervals = nil
	r.s.projects[project.ID] = project
	return project, nil
}

func (r projectRepo) Remove(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[project.ID]; !ok {
		return domain.ErrNoProject.WithContext("project_id", project.ID)
	}
	delete(r.s.projects, project.ID)
	for id, interval := range r.s.intervals {
		if interval.ProjectID == project.ID {
			delete(r.s.intervals, id)
		}
	}
	return nil
}

func (s *Store) findByNameLocked(name string) (domain.Project, bool) {
	for _, project := range s.projects {
		if strings.EqualFold(project.Name, name) {
			return project, true
		}
	}
	return domain.Project{}, false
}

type intervalRepo struct{ s *Store }

func (r intervalRepo) FindByID(ctx context.Context, id int64) (*domain.TimeInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	interval, ok := r.s.intervals[id]
	if !ok {
		return nil, nil
	}
	return &interval, nil
}

func (r intervalRepo) FindActiveByProjectID(ctx context.Context, projectID int64) (*domain.TimeInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if active, ok := r.s.activeLocked(projectID); ok {
		return &active, nil
	}
	return nil, nil
}

func (r intervalRepo) Add(ctx context.Context, interval domain.TimeInterval) (domain.TimeInterval, error) {
	if err := ctx.Err(); err != nil {
		return domain.TimeInterval{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[interval.ProjectID]; !ok {
		return domain.TimeInterval{}, domain.ErrNoProject.WithContext("project_id", interval.ProjectID)
	}
	if interval.IsActive() {
		if _, ok := r.s.activeLocked(interval.ProjectID); ok {
			return domain.TimeInterval{}, domain.ErrActiveProject.WithContext("project_id", interval.ProjectID)
		}
	}
	r.s.nextID.interval++
	interval.ID = r.s.nextID.interval
	r.s.intervals[interval.ID] = interval
	return interval, nil
}

func (r intervalRepo) Update(ctx context.Context, interval domain.TimeInterval) (domain.TimeInterval, error) {
	updated, err := r.UpdateAll(ctx, []domain.TimeInterval{interval})
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return updated[0], nil
}

func (r intervalRepo) UpdateAll(ctx context.Context, intervals []domain.TimeInterval) ([]domain.TimeInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, interval := range intervals {
		if _, ok := r.s.intervals[interval.ID]; !ok {
			return nil, intervalNotFound(interval.ID)
		}
	}
	for _, interval := range intervals {
		r.s.intervals[interval.ID] = interval
	}
	updated := make([]domain.TimeInterval, len(intervals))
	copy(updated, intervals)
	return updated, nil
}

func (r intervalRepo) Remove(ctx context.Context, interval domain.TimeInterval) error {
	return r.RemoveAll(ctx, []domain.TimeInterval{interval})
}

func (r intervalRepo) RemoveAll(ctx context.Context, intervals []domain.TimeInterval) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, interval := range intervals {
		if _, ok := r.s.intervals[interval.ID]; !ok {
			return intervalNotFound(interval.ID)
		}
	}
	for _, interval := range intervals {
		delete(r.s.intervals, interval.ID)
	}
	return nil
}

func (r intervalRepo) FindProjectTimeSince(ctx context.Context, projectID int64, since time.Time) ([]domain.TimeInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sinceMs := since.UnixMilli()
	var intervals []domain.TimeInterval
	for _, interval := range r.s.intervals {
		if interval.ProjectID != projectID {
			continue
		}
		if interval.Start >= sinceMs || interval.IsActive() {
			intervals = append(intervals, interval)
		}
	}
	sortByStart(intervals)
	return intervals, nil
}

func (s *Store) activeLocked(projectID int64) (domain.TimeInterval, bool) {
	for _, interval := range s.intervals {
		if interval.ProjectID == projectID && interval.IsActive() {
			return interval, true
		}
	}
	return domain.TimeInterval{}, false
}

type timesheetRepo struct{ s *Store }

func (r timesheetRepo) GetTimesheet(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error) {
	return r.timesheet(ctx, projectID, page, true)
}

func (r timesheetRepo) GetTimesheetWithoutRegisteredEntries(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error) {
	return r.timesheet(ctx, projectID, page, false)
}

func (r timesheetRepo) timesheet(ctx context.Context, projectID int64, page domain.PageRequest, includeRegistered bool) (map[domain.Day][]domain.TimesheetItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var intervals []domain.TimeInterval
	for _, interval := range r.s.intervals {
		if interval.ProjectID != projectID {
			continue
		}
		if interval.Registered && !includeRegistered {
			continue
		}
		intervals = append(intervals, interval)
	}
	sortByStart(intervals)
	return page.SelectPage(domain.GroupIntervalsByDay(intervals, r.s.loc)), nil
}

func sortByStart(intervals []domain.TimeInterval) {
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start != intervals[j].Start {
			return intervals[i].Start < intervals[j].Start
		}
		return intervals[i].ID < intervals[j].ID
	})
}

func intervalNotFound(id int64) *apperrors.AppError {
	return apperrors.NewNotFoundError("time interval", strconv.FormatInt(id, 10))
}
