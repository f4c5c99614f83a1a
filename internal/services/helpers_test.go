package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"worktime/internal/config"
	"worktime/internal/domain"
	"worktime/internal/repository"
	"worktime/internal/repository/memory"
)

// recordingTimesheets counts the calls made to the timesheet repository
type recordingTimesheets struct {
	repository.TimesheetRepository

	mu                sync.Mutex
	all               int
	withoutRegistered int
	pages             []domain.PageRequest
}

func (r *recordingTimesheets) GetTimesheet(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error) {
	r.mu.Lock()
	r.all++
	r.pages = append(r.pages, page)
	r.mu.Unlock()
	return r.TimesheetRepository.GetTimesheet(ctx, projectID, page)
}

func (r *recordingTimesheets) GetTimesheetWithoutRegisteredEntries(ctx context.Context, projectID int64, page domain.PageRequest) (map[domain.Day][]domain.TimesheetItem, error) {
	r.mu.Lock()
	r.withoutRegistered++
	r.pages = append(r.pages, page)
	r.mu.Unlock()
	return r.TimesheetRepository.GetTimesheetWithoutRegisteredEntries(ctx, projectID, page)
}

// recordingIntervals counts bulk updates
type recordingIntervals struct {
	repository.TimeIntervalRepository

	mu         sync.Mutex
	updateAlls [][]domain.TimeInterval
}

func (r *recordingIntervals) UpdateAll(ctx context.Context, intervals []domain.TimeInterval) ([]domain.TimeInterval, error) {
	r.mu.Lock()
	r.updateAlls = append(r.updateAlls, intervals)
	r.mu.Unlock()
	return r.TimeIntervalRepository.UpdateAll(ctx, intervals)
}

// recordingRepository serves the memory store through the recorders
type recordingRepository struct {
	*memory.Store
	timesheets *recordingTimesheets
	intervals  *recordingIntervals
}

func newRecordingRepository() *recordingRepository {
	store := memory.New(time.UTC)
	return &recordingRepository{
		Store:      store,
		timesheets: &recordingTimesheets{TimesheetRepository: store.Timesheets()},
		intervals:  &recordingIntervals{TimeIntervalRepository: store.TimeIntervals()},
	}
}

func (r *recordingRepository) Timesheets() repository.TimesheetRepository {
	return r.timesheets
}

func (r *recordingRepository) TimeIntervals() repository.TimeIntervalRepository {
	return r.intervals
}

// setupServices wires a container over repo whose clock reads now
func setupServices(t *testing.T, repo repository.Repository, now time.Time) *ServiceContainer {
	t.Helper()
	cfg := config.NewConfig()
	container := NewServiceContainer(repo, cfg, nil)
	container.SetClock(func() time.Time { return now })
	return container
}

func createProject(t *testing.T, container *ServiceContainer, name string) domain.Project {
	t.Helper()
	project, err := container.ProjectService.CreateProject(context.Background(), name)
	require.NoError(t, err)
	return project
}

func addInterval(t *testing.T, repo repository.Repository, interval domain.TimeInterval) domain.TimeInterval {
	t.Helper()
	stored, err := repo.TimeIntervals().Add(context.Background(), interval)
	require.NoError(t, err)
	return stored
}
