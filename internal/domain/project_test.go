package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedName string
		expectError  bool
	}{
		{name: "should accept a plain name", input: "Client work", expectedName: "Client work"},
		{name: "should trim surrounding whitespace", input: "  Billing \t", expectedName: "Billing"},
		{name: "should reject an empty name", input: "", expectError: true},
		{name: "should reject a whitespace only name", input: " \n\t ", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := NewProject(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidProjectName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, project.Name)
			assert.Equal(t, int64(0), project.ID)
			assert.Empty(t, project.Intervals)
		})
	}
}

func TestProject_WithIntervals(t *testing.T) {
	project := Project{ID: 1, Name: "A"}
	intervals := []TimeInterval{{ID: 1, ProjectID: 1, Start: 1, Stop: 2}}

	result := project.WithIntervals(intervals)
	intervals[0].Stop = 99

	assert.Nil(t, project.Intervals)
	require.Len(t, result.Intervals, 1)
	assert.Equal(t, int64(2), result.Intervals[0].Stop, "copy must not alias the input slice")
}

func TestProject_ActiveState(t *testing.T) {
	now := time.UnixMilli(5_000)

	t.Run("should be inactive without a running interval", func(t *testing.T) {
		project := Project{ID: 1}.WithIntervals([]TimeInterval{{ID: 1, ProjectID: 1, Start: 1, Stop: 2}})

		_, since := project.ClockedInSince()

		assert.False(t, project.IsActive())
		assert.False(t, since)
		assert.Equal(t, time.Duration(0), project.Elapsed(now))
	})

	t.Run("should report the running interval", func(t *testing.T) {
		project := Project{ID: 1}.WithIntervals([]TimeInterval{
			{ID: 1, ProjectID: 1, Start: 1, Stop: 2},
			{ID: 2, ProjectID: 1, Start: 3_000},
		})

		since, ok := project.ClockedInSince()
		active, _ := project.ActiveInterval()

		assert.True(t, project.IsActive())
		assert.True(t, ok)
		assert.Equal(t, time.UnixMilli(3_000), since)
		assert.Equal(t, int64(2), active.ID)
		assert.Equal(t, 2*time.Second, project.Elapsed(now))
	})
}

func TestProject_SummarizedTime(t *testing.T) {
	project := Project{ID: 1}.WithIntervals([]TimeInterval{
		{ID: 1, ProjectID: 1, Start: 0, Stop: 1_000, Registered: true},
		{ID: 2, ProjectID: 1, Start: 2_000, Stop: 4_000},
		{ID: 3, ProjectID: 1, Start: 5_000},
	})

	assert.Equal(t, 3*time.Second, project.SummarizedTime())
	assert.Equal(t, 4*time.Second, project.SummarizedTimeAt(time.UnixMilli(6_000)))
}
