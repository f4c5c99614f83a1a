package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/internal/domain"
	apperrors "worktime/internal/errors"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()

	store, err := NewWithOptions(context.Background(), Options{
		Path:     filepath.Join(t.TempDir(), "wt.db"),
		Location: time.UTC,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func addProject(t *testing.T, store *Store, name string) domain.Project {
	t.Helper()
	project, err := store.Projects().Add(context.Background(), domain.Project{Name: name})
	require.NoError(t, err)
	return project
}

func TestNew_InMemory(t *testing.T) {
	store, err := New(MemoryPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Optimize(context.Background()))

	project, err := store.Projects().Add(context.Background(), domain.Project{Name: "Memory"})
	require.NoError(t, err)
	assert.Greater(t, project.ID, int64(0))
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should add and find a project", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")

		byID, err := store.Projects().FindByID(ctx, project.ID)
		require.NoError(t, err)
		byName, err := store.Projects().FindByName(ctx, "client")
		require.NoError(t, err)

		require.NotNil(t, byID)
		require.NotNil(t, byName)
		assert.Equal(t, "Client", byID.Name)
		assert.Equal(t, project.ID, byName.ID)
	})

	t.Run("should return nil when the project does not exist", func(t *testing.T) {
		store := setupTestDB(t)

		byID, err := store.Projects().FindByID(ctx, 999)
		require.NoError(t, err)
		byName, err := store.Projects().FindByName(ctx, "nobody")
		require.NoError(t, err)

		assert.Nil(t, byID)
		assert.Nil(t, byName)
	})

	t.Run("should reject names differing only by case", func(t *testing.T) {
		store := setupTestDB(t)
		addProject(t, store, "Client")

		_, err := store.Projects().Add(ctx, domain.Project{Name: "CLIENT"})

		assert.True(t, errors.Is(err, domain.ErrProjectAlreadyExists))
	})

	t.Run("should list projects ordered by name", func(t *testing.T) {
		store := setupTestDB(t)
		addProject(t, store, "beta")
		addProject(t, store, "Alpha")

		projects, err := store.Projects().FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "Alpha", projects[0].Name)
		assert.Equal(t, "beta", projects[1].Name)
	})

	t.Run("should remove a project and its intervals", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")
		interval, err := store.TimeIntervals().Add(ctx, domain.NewTimeInterval(project.ID, 100))
		require.NoError(t, err)

		require.NoError(t, store.Projects().Remove(ctx, project))

		found, err := store.TimeIntervals().FindByID(ctx, interval.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		err = store.Projects().Remove(ctx, project)
		assert.True(t, errors.Is(err, domain.ErrNoProject))
	})
}

func TestTimeIntervalRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should add, clock out and find an interval", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")

		added, err := store.TimeIntervals().Add(ctx, domain.NewTimeInterval(project.ID, 100))
		require.NoError(t, err)
		active, err := store.TimeIntervals().FindActiveByProjectID(ctx, project.ID)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, added, *active)

		stopped, err := added.ClockOutAt(time.UnixMilli(200))
		require.NoError(t, err)
		_, err = store.TimeIntervals().Update(ctx, stopped)
		require.NoError(t, err)

		active, err = store.TimeIntervals().FindActiveByProjectID(ctx, project.ID)
		require.NoError(t, err)
		assert.Nil(t, active)

		found, err := store.TimeIntervals().FindByID(ctx, added.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 100*time.Millisecond, found.Time())
	})

	t.Run("should refuse a second active interval", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")
		_, err := store.TimeIntervals().Add(ctx, domain.NewTimeInterval(project.ID, 100))
		require.NoError(t, err)

		_, err = store.TimeIntervals().Add(ctx, domain.NewTimeInterval(project.ID, 200))

		assert.True(t, errors.Is(err, domain.ErrActiveProject))
	})

	t.Run("should refuse an interval for an unknown project", func(t *testing.T) {
		store := setupTestDB(t)

		_, err := store.TimeIntervals().Add(ctx, domain.NewTimeInterval(404, 100))

		assert.True(t, errors.Is(err, domain.ErrNoProject))
	})

	t.Run("should keep a single active interval under concurrent clock in", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")

		var wg sync.WaitGroup
		results := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(start int64) {
				defer wg.Done()
				_, err := store.TimeIntervals().Add(ctx, domain.NewTimeInterval(project.ID, start))
				results <- err
			}(int64(100 + i))
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, domain.ErrActiveProject))
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("should roll back UpdateAll when one interval is missing", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")
		stored, err := store.TimeIntervals().Add(ctx, domain.TimeInterval{ProjectID: project.ID, Start: 1, Stop: 2})
		require.NoError(t, err)

		_, err = store.TimeIntervals().UpdateAll(ctx, []domain.TimeInterval{
			stored.MarkAsRegistered(),
			{ID: 999, ProjectID: project.ID, Start: 1, Stop: 2},
		})

		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
		found, err := store.TimeIntervals().FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.False(t, found.Registered)
	})

	t.Run("should remove intervals", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")
		first, err := store.TimeIntervals().Add(ctx, domain.TimeInterval{ProjectID: project.ID, Start: 1, Stop: 2})
		require.NoError(t, err)
		second, err := store.TimeIntervals().Add(ctx, domain.TimeInterval{ProjectID: project.ID, Start: 3, Stop: 4})
		require.NoError(t, err)

		require.NoError(t, store.TimeIntervals().RemoveAll(ctx, []domain.TimeInterval{first, second}))

		err = store.TimeIntervals().Remove(ctx, first)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("should remove a repeated interval once", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")
		stored, err := store.TimeIntervals().Add(ctx, domain.TimeInterval{ProjectID: project.ID, Start: 1, Stop: 2})
		require.NoError(t, err)

		err = store.TimeIntervals().RemoveAll(ctx, []domain.TimeInterval{stored, stored})

		require.NoError(t, err)
		found, err := store.TimeIntervals().FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("should find time since a starting point", func(t *testing.T) {
		store := setupTestDB(t)
		project := addProject(t, store, "Client")
		for _, interval := range []domain.TimeInterval{
			{ProjectID: project.ID, Start: 500, Stop: 600},
			{ProjectID: project.ID, Start: 1_000, Stop: 1_500},
			{ProjectID: project.ID, Start: 900},
		} {
			_, err := store.TimeIntervals().Add(ctx, interval)
			require.NoError(t, err)
		}

		intervals, err := store.TimeIntervals().FindProjectTimeSince(ctx, project.ID, time.UnixMilli(1_000))

		require.NoError(t, err)
		require.Len(t, intervals, 2)
		assert.Equal(t, int64(900), intervals[0].Start)
		assert.True(t, intervals[0].IsActive())
		assert.Equal(t, int64(1_000), intervals[1].Start)
	})
}

func TestTimesheetRepository(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	project := addProject(t, store, "Client")
	other := addProject(t, store, "Other")

	at := func(day, hour int) int64 {
		return time.Date(2024, time.May, day, hour, 0, 0, 0, time.UTC).UnixMilli()
	}
	for day := 1; day <= 12; day++ {
		_, err := store.TimeIntervals().Add(ctx, domain.TimeInterval{
			ProjectID:  project.ID,
			Start:      at(day, 9),
			Stop:       at(day, 10),
			Registered: day <= 3,
		})
		require.NoError(t, err)
	}
	_, err := store.TimeIntervals().Add(ctx, domain.TimeInterval{ProjectID: project.ID, Start: at(12, 13), Stop: at(12, 14)})
	require.NoError(t, err)
	_, err = store.TimeIntervals().Add(ctx, domain.TimeInterval{ProjectID: other.ID, Start: at(12, 8), Stop: at(12, 9)})
	require.NoError(t, err)

	t.Run("should return the newest days of the first page", func(t *testing.T) {
		raw, err := store.Timesheets().GetTimesheet(ctx, project.ID, domain.WithOffset(0))

		require.NoError(t, err)
		assert.Len(t, raw, domain.DefaultMaxResults)
		assert.Len(t, raw[domain.Day{Year: 2024, Month: time.May, Day: 12}], 2)
		assert.NotContains(t, raw, domain.Day{Year: 2024, Month: time.May, Day: 2})
	})

	t.Run("should return older days on later pages", func(t *testing.T) {
		raw, err := store.Timesheets().GetTimesheet(ctx, project.ID, domain.WithOffset(10))

		require.NoError(t, err)
		assert.Len(t, raw, 2)
		assert.Contains(t, raw, domain.Day{Year: 2024, Month: time.May, Day: 1})
	})

	t.Run("should skip registered entries before paging", func(t *testing.T) {
		raw, err := store.Timesheets().GetTimesheetWithoutRegisteredEntries(ctx, project.ID, domain.WithOffset(0))

		require.NoError(t, err)
		assert.Len(t, raw, 9)
		assert.NotContains(t, raw, domain.Day{Year: 2024, Month: time.May, Day: 3})
	})

	t.Run("should group into a sorted timesheet", func(t *testing.T) {
		raw, err := store.Timesheets().GetTimesheet(ctx, project.ID, domain.WithOffsetAndMaxResults(0, 1))
		require.NoError(t, err)

		timesheet := domain.GroupTimesheet(raw)

		require.Len(t, timesheet, 1)
		require.Len(t, timesheet[0].Items, 2)
		assert.Equal(t, "13:00 - 14:00", timesheet[0].Items[0].Title(time.UTC))
		assert.Equal(t, "09:00 - 10:00", timesheet[0].Items[1].Title(time.UTC))
	})
}

func TestStore_QueryTimeout(t *testing.T) {
	store := setupTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := store.Projects().FindAll(ctx)

	assert.Error(t, err)
}
