package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Day is a calendar day in a specific location. It is comparable and used as
// the grouping key of a timesheet.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of a millisecond timestamp in loc.
func DayOf(ms int64, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := time.UnixMilli(ms).In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

// Time returns midnight of the day in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is an earlier calendar day than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// HoursMinutes is a duration rounded to whole minutes.
type HoursMinutes struct {
	Hours   int64
	Minutes int64
}

// FromDuration rounds to the nearest minute, half up, so 59.5 minutes
// becomes one hour.
func FromDuration(d time.Duration) HoursMinutes {
	if d < 0 {
		d = 0
	}
	total := int64((d + 30*time.Second) / time.Minute)
	return HoursMinutes{Hours: total / 60, Minutes: total % 60}
}

// HoursMinutesFormat renders an HoursMinutes value for display.
type HoursMinutesFormat func(HoursMinutes) string

// DigitalHoursMinutesFormat renders "1:05".
func DigitalHoursMinutesFormat(hm HoursMinutes) string {
	return fmt.Sprintf("%d:%02d", hm.Hours, hm.Minutes)
}

// FractionHoursFormat renders decimal hours, "1.08" for one hour five minutes.
func FractionHoursFormat(hm HoursMinutes) string {
	return fmt.Sprintf("%.2f", float64(hm.Hours)+float64(hm.Minutes)/60)
}

// ParseHoursMinutesFormat maps a configuration name to a format.
func ParseHoursMinutesFormat(name string) (HoursMinutesFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "digital":
		return DigitalHoursMinutesFormat, true
	case "fraction":
		return FractionHoursFormat, true
	default:
		return nil, false
	}
}

// TimesheetItem is one interval as it appears in a timesheet.
type TimesheetItem struct {
	TimeInterval TimeInterval
}

func NewTimesheetItem(interval TimeInterval) TimesheetItem {
	return TimesheetItem{TimeInterval: interval}
}

// Title is "HH:MM" for a running interval and "HH:MM - HH:MM" otherwise.
func (ti TimesheetItem) Title(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	start := ti.TimeInterval.StartedAt().In(loc).Format("15:04")
	if ti.TimeInterval.IsActive() {
		return start
	}
	return start + " - " + ti.TimeInterval.StoppedAt().In(loc).Format("15:04")
}

// TimeSummary formats the duration of the interval up to now.
func (ti TimesheetItem) TimeSummary(format HoursMinutesFormat, now time.Time) string {
	return format(FromDuration(ti.TimeInterval.Interval(now)))
}

func (ti TimesheetItem) IsRegistered() bool {
	return ti.TimeInterval.Registered
}

// TimesheetDay holds the items of one calendar day, newest first.
type TimesheetDay struct {
	Day   Day
	Items []TimesheetItem
}

// Duration sums the items up to now.
func (td TimesheetDay) Duration(now time.Time) time.Duration {
	var total time.Duration
	for _, item := range td.Items {
		total += item.TimeInterval.Interval(now)
	}
	return total
}

func (td TimesheetDay) TimeSummary(format HoursMinutesFormat, now time.Time) string {
	return format(FromDuration(td.Duration(now)))
}

// IsRegistered is true when the day has items and every one is registered.
func (td TimesheetDay) IsRegistered() bool {
	if len(td.Items) == 0 {
		return false
	}
	for _, item := range td.Items {
		if !item.IsRegistered() {
			return false
		}
	}
	return true
}

// Timesheet is a list of days, newest first.
type Timesheet []TimesheetDay

// Intervals flattens the timesheet in display order.
func (t Timesheet) Intervals() []TimeInterval {
	var intervals []TimeInterval
	for _, day := range t {
		for _, item := range day.Items {
			intervals = append(intervals, item.TimeInterval)
		}
	}
	return intervals
}

// GroupTimesheet orders the raw day multimap: days descending, items within a
// day by start descending with equal starts ordered by ID descending.
// The input is not modified.
func GroupTimesheet(raw map[Day][]TimesheetItem) Timesheet {
	timesheet := make(Timesheet, 0, len(raw))
	for day, items := range raw {
		sorted := make([]TimesheetItem, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].TimeInterval, sorted[j].TimeInterval
			if a.Start != b.Start {
				return a.Start > b.Start
			}
			return a.ID > b.ID
		})
		timesheet = append(timesheet, TimesheetDay{Day: day, Items: sorted})
	}

	sort.Slice(timesheet, func(i, j int) bool {
		return timesheet[j].Day.Before(timesheet[i].Day)
	})
	return timesheet
}

// GroupIntervalsByDay builds the raw day multimap keyed by each interval's
// start day in loc.
func GroupIntervalsByDay(intervals []TimeInterval, loc *time.Location) map[Day][]TimesheetItem {
	raw := make(map[Day][]TimesheetItem)
	for _, interval := range intervals {
		day := DayOf(interval.Start, loc)
		raw[day] = append(raw[day], NewTimesheetItem(interval))
	}
	return raw
}
