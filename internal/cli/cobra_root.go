package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/logging"
	"worktime/internal/repository"
	"worktime/internal/services"
)

// RepositoryFactory opens the storage for the loaded configuration
type RepositoryFactory func(ctx context.Context, cfg *config.Config) (repository.Repository, error)

// DefaultRepository opens the repository selected by the configuration
func DefaultRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	return config.CreateRepository(ctx, cfg)
}

// newBusinessAPI wires the services of one execution over an opened repository
func newBusinessAPI(repo repository.Repository, cfg *config.Config, logger *slog.Logger) api.BusinessAPI {
	container := services.NewServiceContainer(repo, cfg, logger)
	return api.NewBusinessAPI(container, cfg)
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	loaderOpts []config.LoaderOption
	openRepo   RepositoryFactory
	version    string

	out    io.Writer
	errOut io.Writer
	in     io.Reader

	config *config.Config
	log    *slog.Logger
	repo   repository.Repository
}

// RootOption customizes a RootCommand
type RootOption func(*RootCommand)

// WithLoaderOptions passes options to the configuration loader
func WithLoaderOptions(opts ...config.LoaderOption) RootOption {
	return func(r *RootCommand) { r.loaderOpts = append(r.loaderOpts, opts...) }
}

// WithRepositoryFactory replaces DefaultRepository
func WithRepositoryFactory(factory RepositoryFactory) RootOption {
	return func(r *RootCommand) { r.openRepo = factory }
}

// WithIO replaces the standard streams
func WithIO(out, errOut io.Writer, in io.Reader) RootOption {
	return func(r *RootCommand) {
		r.out = out
		r.errOut = errOut
		r.in = in
	}
}

// WithVersion sets the version reported by --version and /health
func WithVersion(version string) RootOption {
	return func(r *RootCommand) { r.version = version }
}

// NewRootCommand creates the root cobra command with global flags.
// The repository is opened on first use and shared by later executions.
// The services are rebuilt on every execution from the configuration it loaded.
func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		openRepo:   DefaultRepository,
		version:    "dev",
		out:        os.Stdout,
		errOut:     os.Stderr,
		in:         os.Stdin,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "wt",
		Short: "Track working time per project",
		Long: `worktime (wt) records the time you spend on projects.

Clock in and out of projects, review a paged timesheet grouped by day and
mark entries as registered once they have been booked elsewhere.

EXAMPLES:
  wt project add "Client A"              # Create a project
  wt project list --since month          # Time per project this month
  wt clock in 1 --at 09:15               # Clock in to project 1 at 09:15 today
  wt clock toggle 1                      # Clock out if running, in otherwise
  wt timesheet 1 --offset 10             # The next page of days
  wt timesheet 1 --format csv > time.csv  # Export a page as CSV
  wt register 4 5                        # Toggle the registered flag
  wt serve --addr :8080                  # Serve the JSON API

CONFIGURATION:
  Priority: command-line flags > environment > .env > config file > defaults
  The config file is TOML at $WT_CONFIG or <user config dir>/worktime/config.toml.

  WT_ENV                                 production, test (in-memory sqlite) or memory
  WT_DB_DIR                              Database directory (default: ~/.worktime)
  WT_DB_FILENAME                         Database filename (default: worktime.db)
  WT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
  WT_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)
  WT_TIMESHEET_HIDE_REGISTERED           Hide registered time (default: false)
  WT_TIMESHEET_TIME_FORMAT               digital or fraction (default: digital)
  WT_TIMESHEET_LOCATION                  IANA time zone (default: local)
  WT_SUMMARY_STARTING_POINT              day, week or month (default: week)
  WT_CLOCK_CONFIRM_CLOCK_OUT             Ask before clocking out (default: true)
  WT_SERVER_ADDR                         Listen address (default: 127.0.0.1:8080)
  WT_SERVER_MAINTENANCE_SCHEDULE         Cron schedule for database upkeep
  WT_APP_TIMEOUT                         Command timeout (default: 60s)
  WT_LOG_LEVEL                           debug, info, warn or error (default: info)`,
		Version:       root.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}
	root.cmd.SetOut(root.out)
	root.cmd.SetErr(root.errOut)
	root.cmd.SetIn(root.in)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args[1:] for the next execution
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Close releases the repository if one was opened
func (r *RootCommand) Close() error {
	if r.repo == nil {
		return nil
	}
	err := r.repo.Close()
	r.repo = nil
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides WT_CONFIG)")
	flags.String("env-file", ".env", "Dotenv file, empty to skip")
	flags.String("env", "", "Environment: production, test or memory (overrides WT_ENV)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides WT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides WT_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides WT_DB_WRITE_TIMEOUT)")

	// Display configuration
	flags.String("starting-point", "", "Summary starting point: day, week or month (overrides WT_SUMMARY_STARTING_POINT)")
	flags.String("time-format", "", "Duration format: digital or fraction (overrides WT_TIMESHEET_TIME_FORMAT)")
	flags.String("timezone", "", "IANA time zone (overrides WT_TIMESHEET_LOCATION)")
	flags.Bool("hide-registered", false, "Hide registered time (overrides WT_TIMESHEET_HIDE_REGISTERED)")
	flags.Bool("confirm-clock-out", true, "Ask before clocking out (overrides WT_CLOCK_CONFIRM_CLOCK_OUT)")

	// Validation configuration
	flags.Int("project-name-max-length", 0, "Maximum project name length (overrides WT_VALIDATION_PROJECT_NAME_MAX)")
	flags.Duration("max-interval-duration", 0, "Maximum interval duration, 0 for no limit (overrides WT_VALIDATION_MAX_INTERVAL_DURATION)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides WT_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Log to stderr (overrides WT_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides WT_LOG_LEVEL)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.projectCommand(),
		r.clockCommand(),
		r.timesheetCommand(),
		r.registerCommand(),
		r.removeTimeCommand(),
		r.serveCommand(),
	)
}

func (r *RootCommand) projectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewProjectCommand(app).Add(ctx, args)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with their time since the starting point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, _ := cmd.Flags().GetString("since")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewProjectCommand(app).List(ctx, since)
			})
		},
	}
	listCmd.Flags().String("since", "", "day, week or month (default: configured starting point)")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a project and all of its time",
		Long:  "Delete a project and all of its time intervals. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewProjectCommand(app).Remove(ctx, args, yes)
			})
		},
	}
	removeCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	projectCmd.AddCommand(addCmd, listCmd, removeCmd)
	return projectCmd
}

func (r *RootCommand) clockCommand() *cobra.Command {
	clockCmd := &cobra.Command{
		Use:   "clock",
		Short: "Clock in to and out of projects",
		Long: `Clock in to and out of projects.

The --at flag accepts a duration ago (30m, 2h), a time today (09:15) or an
RFC 3339 timestamp. Without it the current time is used.`,
	}

	inCmd := &cobra.Command{
		Use:   "in <project-id>",
		Short: "Start recording time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("at")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewClockCommand(app).In(ctx, args, at)
			})
		},
	}

	outCmd := &cobra.Command{
		Use:   "out <project-id>",
		Short: "Stop recording time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("at")
			yes, _ := cmd.Flags().GetBool("yes")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewClockCommand(app).Out(ctx, args, at, yes)
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <project-id>",
		Short: "Clock out when running and in otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("at")
			yes, _ := cmd.Flags().GetBool("yes")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewClockCommand(app).Toggle(ctx, args, at, yes)
			})
		},
	}

	for _, c := range []*cobra.Command{inCmd, outCmd, toggleCmd} {
		c.Flags().String("at", "", "When it happened (default: now)")
	}
	outCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	toggleCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	clockCmd.AddCommand(inCmd, outCmd, toggleCmd)
	return clockCmd
}

func (r *RootCommand) timesheetCommand() *cobra.Command {
	timesheetCmd := &cobra.Command{
		Use:   "timesheet <project-id>",
		Short: "Show recorded time grouped by day",
		Long: `Show recorded time grouped by day, newest first.

Each page holds up to ten days; use --offset to page back.
Use the global --hide-registered flag to leave out registered time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, _ := cmd.Flags().GetInt("offset")
			format, _ := cmd.Flags().GetString("format")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewTimesheetCommand(app).Execute(ctx, args, offset, nil, format)
			})
		},
	}
	timesheetCmd.Flags().Int("offset", 0, "Number of days to skip")
	timesheetCmd.Flags().String("format", "table", "Output format: table or csv")
	return timesheetCmd
}

func (r *RootCommand) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register <interval-id>...",
		Short: "Toggle the registered flag of time intervals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewIntervalCommand(app).Register(ctx, args)
			})
		},
	}
}

func (r *RootCommand) removeTimeCommand() *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove-time <interval-id>...",
		Short: "Delete time intervals",
		Long:  "Delete the given time intervals. Nothing is deleted when one of them does not exist.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewIntervalCommand(app).Remove(ctx, args, yes)
			})
		},
	}
	removeCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return removeCmd
}

func (r *RootCommand) serveCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Long: `Serve the JSON API over HTTP until interrupted.

When WT_SERVER_MAINTENANCE_SCHEDULE holds a cron expression the database is
optimized on that schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewServeCommand(app, r.repo, r.log, r.version).Execute(cmd.Context())
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides WT_SERVER_ADDR)")
	return serveCmd
}

// run executes fn within the configured application timeout
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	app, err := r.app(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, app)
}

func (r *RootCommand) app(ctx context.Context) (*App, error) {
	if r.repo == nil {
		repo, err := r.openRepo(ctx, r.config)
		if err != nil {
			return nil, err
		}
		r.repo = repo
	}
	return NewAppWithIO(newBusinessAPI(r.repo, r.config, r.log), r.config, r.out, r.in), nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig loads every configuration source and applies flag overrides
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()

	opts := append([]config.LoaderOption{}, r.loaderOpts...)
	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		opts = append(opts, config.WithConfigFile(path))
	}
	if flags.Changed("env-file") {
		path, _ := flags.GetString("env-file")
		opts = append(opts, config.WithEnvFile(path))
	}

	cfg, err := config.NewLoader(opts...).LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return err
	}
	r.config = cfg

	level, err := logging.ParseLevel(cfg.Application.LogLevel)
	if err != nil {
		return err
	}
	if !cfg.Application.Verbose && cmd.Name() != "serve" && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	r.log = logging.New(r.errOut, level)
	logging.Debugf("config loaded: env=%s db=%s\n", cfg.Application.Env, cfg.GetDatabasePath())
	return nil
}

// overridesFromFlags collects the flags the user set explicitly
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	o := &config.ConfigOverrides{}

	o.Env = changedString(flags, "env")
	o.DBDir = changedString(flags, "db-dir")
	o.DBFilename = changedString(flags, "db-filename")
	o.DBQueryTimeout = changedDuration(flags, "db-query-timeout")
	o.DBWriteTimeout = changedDuration(flags, "db-write-timeout")
	o.StartingPoint = changedString(flags, "starting-point")
	o.TimeFormat = changedString(flags, "time-format")
	o.Location = changedString(flags, "timezone")
	o.HideRegistered = changedBool(flags, "hide-registered")
	o.ConfirmClockOut = changedBool(flags, "confirm-clock-out")
	o.ProjectNameMaxLength = changedInt(flags, "project-name-max-length")
	o.MaxIntervalDuration = changedDuration(flags, "max-interval-duration")
	o.Timeout = changedDuration(flags, "app-timeout")
	o.Verbose = changedBool(flags, "verbose")
	o.LogLevel = changedString(flags, "log-level")
	o.ServerAddr = changedString(flags, "addr")

	return o
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, _ := flags.GetBool(name)
	return &v
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

func changedDuration(flags *pflag.FlagSet, name string) *time.Duration {
	if f := flags.Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, _ := flags.GetDuration(name)
	return &v
}
