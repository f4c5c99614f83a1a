package domain

import (
	"sort"
)

// DefaultMaxResults is the number of timesheet days in a page.
const DefaultMaxResults = 10

// PageRequest selects a window of timesheet days, newest first.
// Offset and MaxResults count calendar days, not intervals.
type PageRequest struct {
	Offset     int
	MaxResults int
}

// WithOffset returns a page of DefaultMaxResults days starting at offset.
func WithOffset(offset int) PageRequest {
	return PageRequest{Offset: offset, MaxResults: DefaultMaxResults}
}

func WithOffsetAndMaxResults(offset, maxResults int) PageRequest {
	return PageRequest{Offset: offset, MaxResults: maxResults}
}

// SelectPage keeps the days of raw that fall inside the page once the days
// are ordered newest first.
func (p PageRequest) SelectPage(raw map[Day][]TimesheetItem) map[Day][]TimesheetItem {
	days := make([]Day, 0, len(raw))
	for day := range raw {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[j].Before(days[i])
	})

	page := make(map[Day][]TimesheetItem)
	if p.Offset < 0 || p.Offset >= len(days) || p.MaxResults <= 0 {
		return page
	}
	end := p.Offset + p.MaxResults
	if end > len(days) {
		end = len(days)
	}
	for _, day := range days[p.Offset:end] {
		page[day] = raw[day]
	}
	return page
}
