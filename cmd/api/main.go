package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sunfieldhq/solarops-backend/api/controllers"
	"github.com/sunfieldhq/solarops-backend/api/routes"
	"github.com/sunfieldhq/solarops-backend/internal/availability"
	"github.com/sunfieldhq/solarops-backend/internal/projects"
	"github.com/sunfieldhq/solarops-backend/internal/scheduling"
	"github.com/sunfieldhq/solarops-backend/pkg/config"
	"github.com/sunfieldhq/solarops-backend/pkg/db"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/metrics"
	"github.com/sunfieldhq/solarops-backend/pkg/migrate"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	projectsRepo := projects.NewRepository(dbClient.DB())
	projectsService, err := projects.NewService(projectsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create projects service", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	availabilityRepo := availability.NewRepository(dbClient.DB())
	availabilityService, err := availability.NewService(availabilityRepo, projectsRepo, dbClient, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}

	schedulingService, err := scheduling.NewService(scheduling.ServiceParams{
		Repo:         scheduling.NewRepository(dbClient.DB()),
		Availability: availabilityRepo,
		Projects:     projectsRepo,
		Tx:           dbClient,
		Outbox:       outboxService,
		Logger:       logg,
		Matcher:      cfg.Matcher,
		Limits:       cfg.Scheduler,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduling service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(routes.RouterParams{
		Config:       cfg,
		Logger:       logg,
		HTTPMetrics:  metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		Registry:     prometheus.DefaultGatherer,
		Pingers:      map[string]controllers.Pinger{"database": dbClient},
		Availability: availabilityService,
		Scheduling:   schedulingService,
		Projects:     projectsService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
