package cli

import (
	"context"
	"fmt"
	"time"

	"worktime/internal/errors"
)

// ClockCommand handles clock in, out and toggle
type ClockCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewClockCommand creates a new clock command handler
func NewClockCommand(app *App) *ClockCommand {
	return &ClockCommand{app: app, errorHandler: NewErrorHandler()}
}

// In starts a new interval for the project
func (c *ClockCommand) In(ctx context.Context, args []string, at string) error {
	projectID, instant, err := c.parse("clock in", args, at)
	if err != nil {
		return err
	}

	interval, err := c.app.businessAPI.ClockIn(ctx, projectID, instant)
	if err != nil {
		return c.errorHandler.Handle("clock in", err)
	}

	c.app.println(c.app.styles.Active.Render(fmt.Sprintf("Clocked in at %s", interval.Start.Format("15:04"))))
	return nil
}

// Out stops the running interval of the project
func (c *ClockCommand) Out(ctx context.Context, args []string, at string, skipConfirm bool) error {
	projectID, instant, err := c.parse("clock out", args, at)
	if err != nil {
		return err
	}
	if !c.confirmed(skipConfirm, "Clock out now?") {
		return nil
	}

	interval, err := c.app.businessAPI.ClockOut(ctx, projectID, instant)
	if err != nil {
		return c.errorHandler.Handle("clock out", err)
	}

	c.app.println(fmt.Sprintf("Clocked out after %s", c.app.styles.Duration.Render(interval.Duration)))
	return nil
}

// Toggle clocks the project out when it is running and in otherwise
func (c *ClockCommand) Toggle(ctx context.Context, args []string, at string, skipConfirm bool) error {
	projectID, instant, err := c.parse("clock toggle", args, at)
	if err != nil {
		return err
	}

	current, err := c.app.businessAPI.GetProject(ctx, projectID)
	if err != nil {
		return c.errorHandler.Handle("toggle clock", err)
	}
	if current.Active && !c.confirmed(skipConfirm, fmt.Sprintf("Clock out of %s?", current.Name)) {
		return nil
	}

	project, err := c.app.businessAPI.ToggleClock(ctx, projectID, instant)
	if err != nil {
		return c.errorHandler.Handle("toggle clock", err)
	}

	if project.Active {
		c.app.println(c.app.styles.Active.Render(fmt.Sprintf("Clocked in to %s", project.Name)))
	} else {
		c.app.println(fmt.Sprintf("Clocked out of %s", project.Name))
	}
	c.app.println(row("Total this "+project.StartingPoint, c.app.styles.Duration.Render(project.TotalTime), c.app.config.Summary.Width))
	return nil
}

func (c *ClockCommand) confirmed(skipConfirm bool, question string) bool {
	if skipConfirm || !c.app.config.Clock.ConfirmClockOut {
		return true
	}
	if c.app.confirm(question) {
		return true
	}
	c.app.println("Cancelled")
	return false
}

func (c *ClockCommand) parse(command string, args []string, at string) (int64, *time.Time, error) {
	if len(args) != 1 {
		return 0, nil, errors.NewInvalidInputError("command", command, "usage: wt "+command+" <project-id>")
	}
	ids, err := parseIDs("project_id", args)
	if err != nil {
		return 0, nil, err
	}
	instant, err := parseInstant(at, c.app.now())
	if err != nil {
		return 0, nil, err
	}
	return ids[0], instant, nil
}
