package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/errors"
)

// App carries what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	in          *bufio.Reader
	styles      Styles
	now         func() time.Time
}

// NewApp creates an application writing to stdout and reading from stdin
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	return NewAppWithIO(businessAPI, cfg, os.Stdout, os.Stdin)
}

// NewAppWithIO creates an application over the given streams
func NewAppWithIO(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer, in io.Reader) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	loc, err := cfg.GetLocation()
	if err != nil {
		loc = time.Local
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         out,
		in:          bufio.NewReader(in),
		styles:      DefaultStyles(),
		now:         func() time.Time { return time.Now().In(loc) },
	}
}

func (a *App) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// confirm asks a yes/no question; anything but y or yes declines
func (a *App) confirm(question string) bool {
	a.printf("%s [y/N] ", question)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// parseInstant accepts a shorthand like 30m (that long ago), a wall clock
// time like 09:15 (today) or an RFC 3339 timestamp. Empty means now.
func parseInstant(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if duration, err := parseTimeShorthand(value); err == nil {
		at := now.Add(-duration)
		return &at, nil
	}
	if clock, err := time.ParseInLocation("15:04", value, now.Location()); err == nil {
		at := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
		return &at, nil
	}
	if at, err := time.Parse(time.RFC3339, value); err == nil {
		return &at, nil
	}

	return nil, errors.NewInvalidInputError("at", value, "use a duration ago like 30m, a time like 09:15 or an RFC 3339 timestamp")
}

var shorthandPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// parseTimeShorthand parses time shorthand like "30m", "2h" or "1d"
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := shorthandPattern.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, fmt.Errorf("invalid time format: %s", shorthand)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in time format: %s", shorthand)
	}

	switch matches[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	default:
		return time.Duration(value) * 24 * time.Hour, nil
	}
}

// parseIDs parses positive integer arguments
func parseIDs(field string, args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.NewInvalidInputError(field, arg, "must be a positive integer")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
