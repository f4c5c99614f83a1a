package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"strconv"
	"time"

	"worktime/internal/errors"
	"worktime/internal/logging"
	"worktime/internal/repository"
	"worktime/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options configures a Store.
type Options struct {
	// Path of the database file, or MemoryPath.
	Path         string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	BusyTimeout  time.Duration
	// Location groups timesheet days; nil means time.Local.
	Location *time.Location
}

// Store implements the repository contracts on SQLite.
// Writers are serialized by using a single connection.
type Store struct {
	db           *sql.DB
	loc          *time.Location
	queryTimeout time.Duration
	writeTimeout time.Duration
}

var _ repository.Repository = (*Store)(nil)

// New creates a new SQLite store with default options
func New(dbPath string) (*Store, error) {
	return NewWithOptions(context.Background(), Options{Path: dbPath})
}

// NewWithOptions opens the database, applies pending migrations and returns
// the store.
func NewWithOptions(ctx context.Context, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(opts))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(1)
	// The in-memory database lives only as long as its connection.
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logging.Debugf("opened sqlite store at %s\n", opts.Path)

	return &Store{
		db:           db,
		loc:          loc,
		queryTimeout: opts.QueryTimeout,
		writeTimeout: opts.WriteTimeout,
	}, nil
}

func dsn(opts Options) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	params.Add("_pragma", "busy_timeout("+strconv.FormatInt(busy.Milliseconds(), 10)+")")
	params.Set("_txlock", "immediate")

	path := opts.Path
	if path == "" {
		path = MemoryPath
	}
	return path + "?" + params.Encode()
}

func (s *Store) Projects() repository.ProjectRepository           { return &projectRepository{s} }
func (s *Store) TimeIntervals() repository.TimeIntervalRepository { return &timeIntervalRepository{s} }
func (s *Store) Timesheets() repository.TimesheetRepository       { return &timesheetRepository{s} }

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.NewDatabaseError("ping", err)
	}
	return nil
}

// Optimize runs SQLite's housekeeping on the query planner statistics.
func (s *Store) Optimize(ctx context.Context) error {
	ctx, cancel := s.writeContext(ctx)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return errors.NewDatabaseError("optimize", err)
	}
	return nil
}

func (s *Store) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withOptionalTimeout(ctx, s.queryTimeout)
}

func (s *Store) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withOptionalTimeout(ctx, s.writeTimeout)
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
