package api

import (
	"context"
	"time"

	"worktime/internal/config"
	"worktime/internal/domain"
	"worktime/internal/services"
)

// IntervalView is a time interval as shown to users
type IntervalView struct {
	ID         int64      `json:"id"`
	ProjectID  int64      `json:"project_id"`
	Start      time.Time  `json:"start"`
	Stop       *time.Time `json:"stop,omitempty"`
	Registered bool       `json:"registered"`
	Duration   string     `json:"duration"`
}

// ProjectView is a project with the time recorded since the starting point
type ProjectView struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Active         bool           `json:"active"`
	ClockedInSince *time.Time     `json:"clocked_in_since,omitempty"`
	Elapsed        string         `json:"elapsed,omitempty"`
	TotalTime      string         `json:"total_time"`
	StartingPoint  string         `json:"starting_point"`
	Intervals      []IntervalView `json:"intervals"`
}

// TimesheetItemView is one row of a timesheet day
type TimesheetItemView struct {
	IntervalView
	Title string `json:"title"`
}

// TimesheetDayView groups the items of one calendar day
type TimesheetDayView struct {
	Date       string              `json:"date"`
	TotalTime  string              `json:"total_time"`
	Registered bool                `json:"registered"`
	Items      []TimesheetItemView `json:"items"`
}

// TimesheetView is one page of a project timesheet, newest day first
type TimesheetView struct {
	ProjectID      int64              `json:"project_id"`
	Offset         int                `json:"offset"`
	HideRegistered bool               `json:"hide_registered"`
	Days           []TimesheetDayView `json:"days"`
}

// BusinessAPI defines the business-logic-only interface shared by the CLI and HTTP surfaces
type BusinessAPI interface {
	// ========== Project Management ==========

	// CreateProject adds a project with a unique name
	CreateProject(ctx context.Context, name string) (*ProjectView, error)

	// GetProject returns one project with its time since the configured starting point
	GetProject(ctx context.Context, id int64) (*ProjectView, error)

	// ListProjects returns all projects; an empty startingPoint uses the configured one
	ListProjects(ctx context.Context, startingPoint string) ([]*ProjectView, error)

	// RemoveProject deletes a project and its time
	RemoveProject(ctx context.Context, id int64) error

	// ========== Clock Workflows ==========

	// ClockIn starts the project at at, or now when at is nil
	ClockIn(ctx context.Context, projectID int64, at *time.Time) (*IntervalView, error)

	// ClockOut stops the project at at, or now when at is nil
	ClockOut(ctx context.Context, projectID int64, at *time.Time) (*IntervalView, error)

	// ToggleClock clocks the project out when it is running and in otherwise
	ToggleClock(ctx context.Context, projectID int64, at *time.Time) (*ProjectView, error)

	// ========== Timesheet Operations ==========

	// GetTimesheet returns a page of days; a nil hideRegistered uses the configured default
	GetTimesheet(ctx context.Context, projectID int64, offset int, hideRegistered *bool) (*TimesheetView, error)

	// ToggleRegistered flips the registered flag of each given interval
	ToggleRegistered(ctx context.Context, ids []int64) ([]IntervalView, error)

	// RemoveTime deletes the given intervals, all or none
	RemoveTime(ctx context.Context, ids []int64) error
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	config   *config.Config
	format   domain.HoursMinutesFormat
	loc      *time.Location
	now      func() time.Time
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer, cfg *config.Config) BusinessAPI {
	loc, err := cfg.GetLocation()
	if err != nil {
		loc = time.Local
	}
	return &businessAPIImpl{
		services: container,
		config:   cfg,
		format:   cfg.GetHoursMinutesFormat(),
		loc:      loc,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// ========== Project Management ==========

func (b *businessAPIImpl) CreateProject(ctx context.Context, name string) (*ProjectView, error) {
	project, err := b.services.ProjectService.CreateProject(ctx, name)
	if err != nil {
		return nil, err
	}

	startingPoint, err := b.startingPoint("")
	if err != nil {
		return nil, err
	}
	return b.projectView(project, startingPoint), nil
}

func (b *businessAPIImpl) GetProject(ctx context.Context, id int64) (*ProjectView, error) {
	startingPoint, err := b.startingPoint("")
	if err != nil {
		return nil, err
	}

	project, err := b.services.ProjectService.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err = b.services.ProjectService.GetProjectTimeSince(ctx, project, startingPoint, b.now())
	if err != nil {
		return nil, err
	}
	return b.projectView(project, startingPoint), nil
}

func (b *businessAPIImpl) ListProjects(ctx context.Context, startingPoint string) ([]*ProjectView, error) {
	sp, err := b.startingPoint(startingPoint)
	if err != nil {
		return nil, err
	}

	projects, err := b.services.ProjectService.GetProjects(ctx, sp, b.now())
	if err != nil {
		return nil, err
	}

	views := make([]*ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, b.projectView(project, sp))
	}
	return views, nil
}

func (b *businessAPIImpl) RemoveProject(ctx context.Context, id int64) error {
	return b.services.ProjectService.RemoveProject(ctx, id)
}

// ========== Clock Workflows ==========

func (b *businessAPIImpl) ClockIn(ctx context.Context, projectID int64, at *time.Time) (*IntervalView, error) {
	interval, err := b.services.ClockService.ClockIn(ctx, projectID, b.instant(at))
	if err != nil {
		return nil, err
	}
	view := b.intervalView(interval)
	return &view, nil
}

func (b *businessAPIImpl) ClockOut(ctx context.Context, projectID int64, at *time.Time) (*IntervalView, error) {
	interval, err := b.services.ClockService.ClockOut(ctx, projectID, b.instant(at))
	if err != nil {
		return nil, err
	}
	view := b.intervalView(interval)
	return &view, nil
}

func (b *businessAPIImpl) ToggleClock(ctx context.Context, projectID int64, at *time.Time) (*ProjectView, error) {
	startingPoint, err := b.startingPoint("")
	if err != nil {
		return nil, err
	}

	project, err := b.services.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project, err = b.services.ClockService.ClockActivityChange(ctx, project, b.instant(at))
	if err != nil {
		return nil, err
	}
	return b.projectView(project, startingPoint), nil
}

// ========== Timesheet Operations ==========

func (b *businessAPIImpl) GetTimesheet(ctx context.Context, projectID int64, offset int, hideRegistered *bool) (*TimesheetView, error) {
	hide := b.config.Timesheet.HideRegistered
	if hideRegistered != nil {
		hide = *hideRegistered
	}

	timesheet, err := b.services.TimesheetService.GetTimesheet(ctx, projectID, offset, hide)
	if err != nil {
		return nil, err
	}

	now := b.now()
	view := &TimesheetView{
		ProjectID:      projectID,
		Offset:         offset,
		HideRegistered: hide,
		Days:           make([]TimesheetDayView, 0, len(timesheet)),
	}
	for _, day := range timesheet {
		dayView := TimesheetDayView{
			Date:       day.Day.String(),
			TotalTime:  day.TimeSummary(b.format, now),
			Registered: day.IsRegistered(),
			Items:      make([]TimesheetItemView, 0, len(day.Items)),
		}
		for _, item := range day.Items {
			dayView.Items = append(dayView.Items, TimesheetItemView{
				IntervalView: b.intervalView(item.TimeInterval),
				Title:        item.Title(b.loc),
			})
		}
		view.Days = append(view.Days, dayView)
	}
	return view, nil
}

func (b *businessAPIImpl) ToggleRegistered(ctx context.Context, ids []int64) ([]IntervalView, error) {
	intervals, err := b.services.TimesheetService.GetTimeIntervals(ctx, ids)
	if err != nil {
		return nil, err
	}

	updated, err := b.services.TimesheetService.MarkRegisteredTime(ctx, intervals)
	if err != nil {
		return nil, err
	}

	views := make([]IntervalView, 0, len(updated))
	for _, interval := range updated {
		views = append(views, b.intervalView(interval))
	}
	return views, nil
}

func (b *businessAPIImpl) RemoveTime(ctx context.Context, ids []int64) error {
	if len(ids) == 1 {
		return b.services.TimesheetService.RemoveTimeByID(ctx, ids[0])
	}

	intervals, err := b.services.TimesheetService.GetTimeIntervals(ctx, ids)
	if err != nil {
		return err
	}
	return b.services.TimesheetService.RemoveTime(ctx, intervals)
}

// ========== Helpers ==========

func (b *businessAPIImpl) startingPoint(value string) (domain.StartingPoint, error) {
	if value == "" {
		value = b.config.Summary.StartingPoint
	}
	return domain.ParseStartingPoint(value)
}

func (b *businessAPIImpl) instant(at *time.Time) time.Time {
	if at == nil {
		return b.now()
	}
	return *at
}

func (b *businessAPIImpl) projectView(project domain.Project, startingPoint domain.StartingPoint) *ProjectView {
	now := b.now()
	view := &ProjectView{
		ID:            project.ID,
		Name:          project.Name,
		Active:        project.IsActive(),
		TotalTime:     b.format(domain.FromDuration(project.SummarizedTimeAt(now))),
		StartingPoint: startingPoint.String(),
		Intervals:     make([]IntervalView, 0, len(project.Intervals)),
	}
	if since, ok := project.ClockedInSince(); ok {
		since = since.In(b.loc)
		view.ClockedInSince = &since
		view.Elapsed = b.format(domain.FromDuration(project.Elapsed(now)))
	}
	for _, interval := range project.Intervals {
		view.Intervals = append(view.Intervals, b.intervalView(interval))
	}
	return view
}

func (b *businessAPIImpl) intervalView(interval domain.TimeInterval) IntervalView {
	view := IntervalView{
		ID:         interval.ID,
		ProjectID:  interval.ProjectID,
		Start:      interval.StartedAt().In(b.loc),
		Registered: interval.Registered,
		Duration:   b.format(domain.FromDuration(interval.Interval(b.now()))),
	}
	if !interval.IsActive() {
		stop := interval.StoppedAt().In(b.loc)
		view.Stop = &stop
	}
	return view
}
