package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	apihttp "worktime/internal/api/http"
	"worktime/internal/maintenance"
	"worktime/internal/repository"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the HTTP API until its context is cancelled
type ServeCommand struct {
	app     *App
	repo    repository.Repository
	log     *slog.Logger
	version string
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App, repo repository.Repository, logger *slog.Logger, version string) *ServeCommand {
	return &ServeCommand{app: app, repo: repo, log: logger, version: version}
}

// Server builds the configured http.Server without starting it
func (c *ServeCommand) Server() *http.Server {
	var db apihttp.Pinger
	if pinger, ok := c.repo.(apihttp.Pinger); ok {
		db = pinger
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		API:     c.app.businessAPI,
		Config:  c.app.config,
		Logger:  c.log,
		DB:      db,
		Version: c.version,
	})
	return &http.Server{
		Addr:              c.app.config.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Execute serves until ctx ends, then drains requests and stops maintenance
func (c *ServeCommand) Execute(ctx context.Context) error {
	scheduler, err := c.scheduler()
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
	}

	srv := c.Server()
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	c.log.Info("http server listening", slog.String("addr", srv.Addr))
	c.app.printf("Serving on http://%s\n", srv.Addr)

	select {
	case err := <-errCh:
		if scheduler != nil {
			scheduler.Stop(context.Background())
		}
		return err
	case <-ctx.Done():
	}

	c.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (c *ServeCommand) scheduler() (*maintenance.Scheduler, error) {
	schedule := c.app.config.Server.MaintenanceSchedule
	optimizer, ok := c.repo.(maintenance.Optimizer)
	if schedule == "" || !ok {
		return nil, nil
	}
	return maintenance.NewScheduler(schedule, optimizer, c.app.config.Database.WriteTimeout, c.log)
}
