package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"goaltracker/internal/controllers"
	"goaltracker/internal/providers"
	"goaltracker/internal/scheduler/interfaces"
	"goaltracker/internal/services"
	"goaltracker/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
	service   services.TrackerServiceInterface
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, service services.TrackerServiceInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      providers.RequestIDMiddleware(logger, mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
		service:   service,
	}
}

// Run restores the tracker, serves HTTP and ticks the countdown until ctx is
// cancelled or a termination signal arrives. The snapshot is saved before the
// countdown is torn down, so a running cooldown resumes on the next start.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	app.service.SetPresenter(services.NewLogPresenter(app.logger))
	if err := app.scheduler.Restore(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	if err := app.scheduler.Init(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.WebServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}

	if err := app.scheduler.Persist(); err != nil && runErr == nil {
		runErr = err
	}
	app.service.Close()
	if runErr != nil {
		return runErr
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
