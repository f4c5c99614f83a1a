package cli

import (
	"context"
	"fmt"

	"worktime/internal/errors"
)

// IntervalCommand edits recorded time intervals by ID
type IntervalCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewIntervalCommand creates a new interval command handler
func NewIntervalCommand(app *App) *IntervalCommand {
	return &IntervalCommand{app: app, errorHandler: NewErrorHandler()}
}

// Register flips the registered flag of each interval
func (c *IntervalCommand) Register(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "register", "usage: wt register <interval-id>...")
	}
	ids, err := parseIDs("time_interval_id", args)
	if err != nil {
		return err
	}

	intervals, err := c.app.businessAPI.ToggleRegistered(ctx, ids)
	if err != nil {
		return c.errorHandler.Handle("register time", err)
	}

	for _, interval := range intervals {
		state := "unregistered"
		if interval.Registered {
			state = "registered"
		}
		c.app.printf("#%d %s\n", interval.ID, state)
	}
	return nil
}

// Remove deletes the intervals, all or none
func (c *IntervalCommand) Remove(ctx context.Context, args []string, skipConfirm bool) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "remove-time", "usage: wt remove-time <interval-id>...")
	}
	ids, err := parseIDs("time_interval_id", args)
	if err != nil {
		return err
	}
	if !skipConfirm && !c.app.confirm(fmt.Sprintf("Remove %d time interval(s)?", len(ids))) {
		c.app.println("Cancelled")
		return nil
	}

	if err := c.app.businessAPI.RemoveTime(ctx, ids); err != nil {
		return c.errorHandler.Handle("remove time", err)
	}

	c.app.println(c.app.styles.Success.Render(fmt.Sprintf("Removed %d time interval(s)", len(ids))))
	return nil
}
