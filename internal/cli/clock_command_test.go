package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/internal/domain"
	apperrors "worktime/internal/errors"
)

func setupClockTest(t *testing.T, input string) (*ClockCommand, *mockBusinessAPI, *App, *bytes.Buffer) {
	t.Helper()
	app, mock, out := setupTestAppWithMockBusinessAPI(t, input)
	_, err := mock.CreateProject(context.Background(), "Client")
	require.NoError(t, err)
	out.Reset()
	return NewClockCommand(app), mock, app, out
}

func TestClockCommand_In(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		at        string
		expectErr func(t *testing.T, err error)
	}{
		{name: "should clock in now", args: []string{"1"}},
		{name: "should clock in at a wall clock time", args: []string{"1"}, at: "00:00"},
		{
			name: "should reject an unknown project id format",
			args: []string{"abc"},
			expectErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
			},
		},
		{
			name: "should reject an unreadable instant",
			args: []string{"1"},
			at:   "soon",
			expectErr: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "invalid input for at")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cmd, mock, _, out := setupClockTest(t, "")

			// Act
			err := cmd.In(context.Background(), tt.args, tt.at)

			// Assert
			if tt.expectErr != nil {
				require.Error(t, err)
				tt.expectErr(t, err)
				assert.Zero(t, mock.calls["ClockIn"])
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), "Clocked in at")
			project, err := mock.GetProject(context.Background(), 1)
			require.NoError(t, err)
			assert.True(t, project.Active)
		})
	}
}

func TestClockCommand_InTwice(t *testing.T) {
	cmd, _, _, _ := setupClockTest(t, "")
	require.NoError(t, cmd.In(context.Background(), []string{"1"}, "1h"))

	err := cmd.In(context.Background(), []string{"1"}, "")

	assert.ErrorIs(t, err, domain.ErrActiveProject)
	assert.Equal(t, "failed to clock in: project is already clocked in", err.Error())
}

func TestClockCommand_Out(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		skipConfirm bool
		confirmOff  bool
		clockedOut  bool
	}{
		{name: "should clock out after confirmation", input: "y\n", clockedOut: true},
		{name: "should stay clocked in when declined", input: "n\n", clockedOut: false},
		{name: "should skip the prompt with yes", skipConfirm: true, clockedOut: true},
		{name: "should skip the prompt when confirmation is off", confirmOff: true, clockedOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			cmd, mock, app, out := setupClockTest(t, tt.input)
			app.config.Clock.ConfirmClockOut = !tt.confirmOff
			require.NoError(t, cmd.In(ctx, []string{"1"}, "30m"))

			// Act
			err := cmd.Out(ctx, []string{"1"}, "", tt.skipConfirm)

			// Assert
			require.NoError(t, err)
			project, err := mock.GetProject(ctx, 1)
			require.NoError(t, err)
			output := out.String()
			if tt.clockedOut {
				assert.Equal(t, 1, mock.calls["ClockOut"])
				assert.False(t, project.Active)
				assert.Contains(t, output, "Clocked out after 0:30")
			} else {
				assert.Zero(t, mock.calls["ClockOut"])
				assert.True(t, project.Active)
				assert.Contains(t, output, "Cancelled")
			}
		})
	}
}

func TestClockCommand_OutWhenIdle(t *testing.T) {
	cmd, _, _, _ := setupClockTest(t, "")

	err := cmd.Out(context.Background(), []string{"1"}, "", true)

	assert.ErrorIs(t, err, domain.ErrInactiveProject)
}

func TestClockCommand_Toggle(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cmd, mock, _, output := setupClockTest(t, "y\n")

	// Act
	errIn := cmd.Toggle(ctx, []string{"1"}, "1h", false)
	afterIn := output.String()
	errOut := cmd.Toggle(ctx, []string{"1"}, "", false)
	errMissing := cmd.Toggle(ctx, []string{"9"}, "", true)

	// Assert
	require.NoError(t, errIn)
	assert.Contains(t, afterIn, "Clocked in to Client")
	assert.NotContains(t, afterIn, "[y/N]", "clocking in never asks")
	require.NoError(t, errOut)
	assert.Contains(t, output.String(), "Clock out of Client? [y/N]")
	assert.Contains(t, output.String(), "Clocked out of Client")
	assert.Equal(t, 2, mock.calls["ToggleClock"])
	assert.ErrorIs(t, errMissing, domain.ErrNoProject)
}
