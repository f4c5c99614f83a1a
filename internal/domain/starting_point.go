package domain

import (
	"strings"
	"time"
)

// StartingPoint selects the window of intervals loaded for a project.
type StartingPoint int

const (
	StartingPointDay StartingPoint = iota
	StartingPointWeek
	StartingPointMonth
)

// ParseStartingPoint accepts "day", "week" or "month", case-insensitively.
func ParseStartingPoint(value string) (StartingPoint, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "day":
		return StartingPointDay, nil
	case "week":
		return StartingPointWeek, nil
	case "month":
		return StartingPointMonth, nil
	default:
		return 0, ErrInvalidStartingPoint.WithContext("value", value)
	}
}

// StartingPointFromInt maps a stored preference back to a StartingPoint.
func StartingPointFromInt(value int) (StartingPoint, error) {
	sp := StartingPoint(value)
	if !sp.IsValid() {
		return 0, ErrInvalidStartingPoint.WithContext("value", value)
	}
	return sp, nil
}

func (sp StartingPoint) IsValid() bool {
	return sp >= StartingPointDay && sp <= StartingPointMonth
}

func (sp StartingPoint) String() string {
	switch sp {
	case StartingPointDay:
		return "day"
	case StartingPointWeek:
		return "week"
	case StartingPointMonth:
		return "month"
	default:
		return "unknown"
	}
}

// Since returns the beginning of the window containing now, in now's
// location: midnight today, midnight on Monday, or midnight on the first.
func (sp StartingPoint) Since(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch sp {
	case StartingPointWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday)
	case StartingPointMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return midnight
	}
}
