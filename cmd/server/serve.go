package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"teampulse/internal/adapters/http/middleware"
	"teampulse/internal/adapters/http/routes"
	"teampulse/internal/adapters/messaging/amqp"
	"teampulse/internal/adapters/persistence"
	"teampulse/internal/adapters/storage/local"
	"teampulse/internal/config"
	"teampulse/internal/core/domain"
	"teampulse/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Opens the configured data source, applies migrations, seeds the admin
and mission catalog, then serves the API until SIGINT or SIGTERM.

When AUTO_CLOSE_SCHEDULE is set the previous month is closed on that schedule.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "override PORT")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := openDataSource(ctx, true)
	if err != nil {
		return err
	}
	defer closeDataSource(ds)

	avatars, err := local.NewAvatarStore(cfg.Storage.AvatarDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("failed to prepare avatar storage: %w", err)
	}

	svc := services.New(ds, cfg, newPublisher(), avatars, domain.SystemMonthClock(cfg.Location()), logger)
	defer closeNotifications(svc)

	cronService := services.NewCronService(svc.Archives, cfg.Archive.AutoCloseSchedule, cfg.Location(), logger.Named("cron"))
	if err := cronService.Start(); err != nil {
		return err
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "Team Pulse API v1.0",
		ErrorHandler:          middleware.CustomErrorHandler(logger),
		BodyLimit:             int(cfg.Storage.MaxAvatarSize) + 1<<20,
		DisableStartupMessage: cfg.IsProd(),
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, cfg, ds, svc)

	port := cfg.Port
	if servePort != "" {
		port = servePort
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("port", port),
			zap.String("data_source", ds.Kind),
			zap.String("timezone", cfg.Location().String()),
			zap.Bool("closing_enabled", cfg.Archive.ClosingEnabled),
		)
		return app.Listen(":" + port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}

// openDataSource connects and migrates the configured backend. With seed
// set, a failed seed is logged and startup continues.
func openDataSource(ctx context.Context, seed bool) (*persistence.DataSource, error) {
	ds, err := persistence.Open(cfg, logger.Named("db"))
	if err != nil {
		return nil, err
	}

	if err := ds.Migrate(); err != nil {
		closeDataSource(ds)
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}
	if ds.Persistent() {
		logger.Info("database migration completed", zap.String("data_source", ds.Kind))
	}

	if seed {
		seeder := config.NewSeeder(ds.Agents, ds.Missions, cfg.Admin, logger.Named("seed"))
		if err := seeder.Run(ctx); err != nil {
			logger.Warn("failed to seed data", zap.Error(err))
		}
	}
	return ds, nil
}

// newPublisher dials the broker when AMQP_URL is set. A broker that cannot
// be reached disables events instead of blocking startup.
func newPublisher() services.EventPublisher {
	if cfg.AMQP.URL == "" {
		logger.Info("event publishing disabled: AMQP_URL not set")
		return nil
	}

	publisher, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger.Named("amqp"))
	if err != nil {
		logger.Warn("event publishing disabled", zap.Error(err))
		return nil
	}
	return publisher
}

func closeNotifications(svc *services.Services) {
	if err := svc.Notifications.Close(); err != nil {
		logger.Warn("failed to close event publisher", zap.Error(err))
	}
}

func closeDataSource(ds *persistence.DataSource) {
	if err := ds.Close(); err != nil {
		logger.Warn("failed to close data source", zap.Error(err))
	}
}
