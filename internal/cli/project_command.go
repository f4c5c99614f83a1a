package cli

import (
	"context"
	"fmt"
	"strings"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// ProjectCommand handles project add, list and remove
type ProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectCommand creates a new project command handler
func NewProjectCommand(app *App) *ProjectCommand {
	return &ProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

// Add creates a project named after the joined arguments
func (c *ProjectCommand) Add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "project add", "usage: wt project add <name>")
	}

	project, err := c.app.businessAPI.CreateProject(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}

	c.app.println(c.app.styles.Success.Render(fmt.Sprintf("Added project %d: %s", project.ID, project.Name)))
	return nil
}

// List prints every project with its time since the starting point
func (c *ProjectCommand) List(ctx context.Context, since string) error {
	projects, err := c.app.businessAPI.ListProjects(ctx, since)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	if len(projects) == 0 {
		c.app.println("No projects found")
		return nil
	}

	c.app.println(c.app.styles.Title.Render("Projects this " + projects[0].StartingPoint))
	for _, project := range projects {
		c.app.println(c.projectLine(project))
	}
	return nil
}

// Remove deletes a project and all of its recorded time
func (c *ProjectCommand) Remove(ctx context.Context, args []string, skipConfirm bool) error {
	ids, err := parseIDs("project_id", args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return errors.NewInvalidInputError("command", "project remove", "usage: wt project remove <id>")
	}

	project, err := c.app.businessAPI.GetProject(ctx, ids[0])
	if err != nil {
		return c.errorHandler.Handle("remove project", err)
	}
	if !skipConfirm && !c.app.confirm(fmt.Sprintf("Remove %q and all of its time?", project.Name)) {
		c.app.println("Cancelled")
		return nil
	}

	if err := c.app.businessAPI.RemoveProject(ctx, project.ID); err != nil {
		return c.errorHandler.Handle("remove project", err)
	}

	c.app.println(c.app.styles.Success.Render("Removed project: " + project.Name))
	return nil
}

func (c *ProjectCommand) projectLine(project *api.ProjectView) string {
	label := fmt.Sprintf("%3d  %s", project.ID, project.Name)
	if project.Active && project.ClockedInSince != nil {
		label += c.app.styles.Active.Render(fmt.Sprintf("  running since %s (%s)", project.ClockedInSince.Format("15:04"), project.Elapsed))
	}
	return row(label, c.app.styles.Duration.Render(project.TotalTime), c.app.config.Summary.Width)
}
