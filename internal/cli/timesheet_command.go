package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// TimesheetCommand prints a page of a project's timesheet
type TimesheetCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTimesheetCommand creates a new timesheet command handler
func NewTimesheetCommand(app *App) *TimesheetCommand {
	return &TimesheetCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints the days of the requested page, newest first, as a table
// or as csv. A nil hideRegistered uses the configured default.
func (c *TimesheetCommand) Execute(ctx context.Context, args []string, offset int, hideRegistered *bool, format string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "timesheet", "usage: wt timesheet <project-id>")
	}
	ids, err := parseIDs("project_id", args)
	if err != nil {
		return err
	}

	if format != "" && format != "table" && format != "csv" {
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}

	timesheet, err := c.app.businessAPI.GetTimesheet(ctx, ids[0], offset, hideRegistered)
	if err != nil {
		return c.errorHandler.Handle("get timesheet", err)
	}

	if format == "csv" {
		return c.outputCSV(timesheet)
	}
	if len(timesheet.Days) == 0 {
		c.app.println("No time recorded")
		return nil
	}
	for i, day := range timesheet.Days {
		if i > 0 {
			c.app.println()
		}
		c.printDay(day)
	}
	return nil
}

func (c *TimesheetCommand) printDay(day api.TimesheetDayView) {
	width := c.app.config.Summary.Width
	styles := c.app.styles

	header := styles.Day.Render(day.Date)
	if day.Registered {
		header += styles.Registered.Render("  registered")
	}
	c.app.println(row(header, styles.Duration.Render(day.TotalTime), width))

	for _, item := range day.Items {
		label := fmt.Sprintf("  #%-4d %s", item.ID, item.Title)
		if item.Registered {
			label = styles.Registered.Render(label + " (registered)")
		} else if item.Stop == nil {
			label = styles.Active.Render(label)
		}
		c.app.println(row(label, item.Duration, width))
	}
}

// outputCSV writes one row per interval
func (c *TimesheetCommand) outputCSV(timesheet *api.TimesheetView) error {
	writer := csv.NewWriter(c.app.out)
	defer writer.Flush()

	header := []string{"ID", "Date", "Start Time", "End Time", "Duration (hours)", "Registered"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	now := c.app.now()
	for _, day := range timesheet.Days {
		for _, item := range day.Items {
			var endTime string
			stop := now
			if item.Stop != nil {
				stop = *item.Stop
				endTime = item.Stop.Format(time.RFC3339)
			}

			record := []string{
				strconv.FormatInt(item.ID, 10),
				day.Date,
				item.Start.Format(time.RFC3339),
				endTime,
				fmt.Sprintf("%.2f", stop.Sub(item.Start).Hours()),
				strconv.FormatBool(item.Registered),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
