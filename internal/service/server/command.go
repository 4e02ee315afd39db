package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rakesh-Biswal/reminder-service/internal/api/rest"
	"github.com/Rakesh-Biswal/reminder-service/internal/clock"
	"github.com/Rakesh-Biswal/reminder-service/internal/config"
	"github.com/Rakesh-Biswal/reminder-service/internal/logger"
	"github.com/Rakesh-Biswal/reminder-service/internal/notification"
	"github.com/Rakesh-Biswal/reminder-service/internal/repository/alarmflag"
	reminderrepo "github.com/Rakesh-Biswal/reminder-service/internal/repository/reminder"
	userrepo "github.com/Rakesh-Biswal/reminder-service/internal/repository/user"
	"github.com/Rakesh-Biswal/reminder-service/internal/service/sweeper"
)

// Options controls the reminder-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the HTTP server.
	ListenAddress string
}

// Run starts the HTTP server and the sweep scheduler and blocks until the
// context is canceled. Configuration is loaded first; the listen address
// argument overrides the configured one.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "reminder-server")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	listenAddress := cfg.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	// Stop the scheduler and the shutdown watcher if startup fails midway.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := connectMongo(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		dctx, dcancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeout)
		defer dcancel()

		if err := client.Disconnect(dctx); err != nil {
			logger.ErrorKV(ctx, "MongoDB disconnect failed", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	reminders := reminderrepo.NewMongoRepository(db)
	users := userrepo.NewMongoRepository(db)
	flags := newFlagStore(ctx, cfg)
	sender := newSender(ctx, cfg)
	clk := clock.System{}

	engine := sweeper.NewEngine(clk, reminders, users, sender, flags, cfg.Timeout)
	scheduler := sweeper.NewScheduler(engine, cfg.SweepInterval, cfg.StartupDelay)

	schedulerDone := make(chan struct{})

	go func() {
		defer close(schedulerDone)

		if err := scheduler.Run(ctx); err != nil {
			logger.ErrorKV(ctx, "Sweep scheduler exited", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	rest.NewServer(rest.Deps{
		Clock:     clk,
		Users:     users,
		Reminders: reminders,
		Flags:     flags,
		Sender:    sender,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}).Register(e)

	logger.InfoKV(ctx, "Reminder server listening",
		"listen_address", listenAddress,
		"sweep_interval", cfg.SweepInterval.String())

	// Done channel is closed after Shutdown finishes to ensure we block
	// until in-flight requests drain before returning.
	done := make(chan struct{})

	go func() {
		defer close(done)

		<-ctx.Done()
		logger.Info(ctx, "Shutting down HTTP server")

		sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeout)
		defer scancel()

		if err := e.Shutdown(sctx); err != nil {
			logger.ErrorKV(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	if err := e.Start(listenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}

	<-done
	<-schedulerDone
	logger.Info(ctx, "Reminder server stopped")

	return nil
}

// connectMongo establishes and verifies the MongoDB connection within the
// configured timeout.
func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	cctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(cctx, nil); err != nil {
		dctx, dcancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeout)
		defer dcancel()

		_ = client.Disconnect(dctx)

		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// newFlagStore selects the alarm flag backend: Firebase when configured,
// otherwise the local JSON file.
func newFlagStore(ctx context.Context, cfg *config.Config) alarmflag.Repository {
	if cfg.FirebaseURL != "" {
		logger.InfoKV(ctx, "Alarm flag backed by Firebase", "url", cfg.FirebaseURL)

		return alarmflag.NewFirebaseRepository(cfg.FirebaseURL, cfg.Timeout)
	}

	logger.InfoKV(ctx, "Alarm flag backed by local file", "path", cfg.AlarmFlagFile)

	return alarmflag.NewFileRepository(cfg.AlarmFlagFile)
}

// newSender selects the SMS backend: Twilio when credentials are present,
// otherwise a logging no-op.
func newSender(ctx context.Context, cfg *config.Config) notification.Sender {
	if cfg.Twilio.AccountSID != "" {
		return notification.NewTwilioSender(cfg.Twilio, cfg.Timeout)
	}

	logger.Info(ctx, "No SMS credentials configured, notifications are logged only")

	return notification.NoopSender{}
}
