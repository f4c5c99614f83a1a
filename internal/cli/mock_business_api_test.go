package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/repository/memory"
	"worktime/internal/services"
)

// mockBusinessAPI wraps a BusinessAPI over an in-memory store, counting the
// calls that change state and failing them on demand
type mockBusinessAPI struct {
	api.BusinessAPI
	calls map[string]int
	errs  map[string]error
}

func newMockBusinessAPI(cfg *config.Config) *mockBusinessAPI {
	container := services.NewServiceContainer(memory.New(time.UTC), cfg, nil)
	return &mockBusinessAPI{
		BusinessAPI: api.NewBusinessAPI(container, cfg),
		calls:       make(map[string]int),
		errs:        make(map[string]error),
	}
}

func (m *mockBusinessAPI) record(name string) error {
	m.calls[name]++
	return m.errs[name]
}

func (m *mockBusinessAPI) ClockIn(ctx context.Context, projectID int64, at *time.Time) (*api.IntervalView, error) {
	if err := m.record("ClockIn"); err != nil {
		return nil, err
	}
	return m.BusinessAPI.ClockIn(ctx, projectID, at)
}

func (m *mockBusinessAPI) ClockOut(ctx context.Context, projectID int64, at *time.Time) (*api.IntervalView, error) {
	if err := m.record("ClockOut"); err != nil {
		return nil, err
	}
	return m.BusinessAPI.ClockOut(ctx, projectID, at)
}

func (m *mockBusinessAPI) ToggleClock(ctx context.Context, projectID int64, at *time.Time) (*api.ProjectView, error) {
	if err := m.record("ToggleClock"); err != nil {
		return nil, err
	}
	return m.BusinessAPI.ToggleClock(ctx, projectID, at)
}

func (m *mockBusinessAPI) RemoveProject(ctx context.Context, id int64) error {
	if err := m.record("RemoveProject"); err != nil {
		return err
	}
	return m.BusinessAPI.RemoveProject(ctx, id)
}

func (m *mockBusinessAPI) RemoveTime(ctx context.Context, ids []int64) error {
	if err := m.record("RemoveTime"); err != nil {
		return err
	}
	return m.BusinessAPI.RemoveTime(ctx, ids)
}

func (m *mockBusinessAPI) GetTimesheet(ctx context.Context, projectID int64, offset int, hideRegistered *bool) (*api.TimesheetView, error) {
	if err := m.record("GetTimesheet"); err != nil {
		return nil, err
	}
	return m.BusinessAPI.GetTimesheet(ctx, projectID, offset, hideRegistered)
}

// setupTestAppWithMockBusinessAPI builds an App whose output is captured and
// whose prompts read input
func setupTestAppWithMockBusinessAPI(t *testing.T, input string) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Timesheet.Location = "UTC"
	cfg.Summary.Width = 40

	mock := newMockBusinessAPI(cfg)
	out := &bytes.Buffer{}
	app := NewAppWithIO(mock, cfg, out, strings.NewReader(input))
	return app, mock, out
}
