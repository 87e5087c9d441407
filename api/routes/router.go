package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunfieldhq/solarops-backend/api/controllers"
	"github.com/sunfieldhq/solarops-backend/api/middleware"
	"github.com/sunfieldhq/solarops-backend/internal/availability"
	"github.com/sunfieldhq/solarops-backend/internal/projects"
	"github.com/sunfieldhq/solarops-backend/internal/scheduling"
	"github.com/sunfieldhq/solarops-backend/pkg/config"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/metrics"
)

// RouterParams carry everything the HTTP surface needs.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	HTTPMetrics  *metrics.HTTPMetrics
	Registry     prometheus.Gatherer
	Pingers      map[string]controllers.Pinger
	Availability availability.Service
	Scheduling   scheduling.Service
	Projects     projects.Service
}

// NewRouter assembles the chi router with the shared middleware chain and the
// versioned API surface.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.Pingers))
	})

	if params.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/installers", func(r chi.Router) {
			r.Post("/", controllers.InstallerCreate(params.Projects, logg))
			r.Route("/{installerID}", func(r chi.Router) {
				r.Get("/", controllers.InstallerGet(params.Projects, logg))
				r.Put("/availability/{date}", controllers.AvailabilitySet(params.Availability, logg))
				r.Get("/availability", controllers.AvailabilityRange(params.Availability, logg))
				r.Get("/upcoming-installs", controllers.UpcomingInstalls(params.Scheduling, logg))
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", controllers.ProjectCreate(params.Projects, logg))
			r.Get("/{projectID}", controllers.ProjectGet(params.Projects, logg))
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/propose", controllers.SchedulePropose(params.Scheduling, logg))
			r.Route("/{scheduleID}", func(r chi.Router) {
				r.Get("/", controllers.ScheduleGet(params.Scheduling, logg))
				r.Post("/confirm", controllers.ScheduleConfirm(params.Scheduling, logg))
				r.Post("/reschedule", controllers.ScheduleReschedule(params.Scheduling, logg))
				r.Post("/cancel", controllers.ScheduleCancel(params.Scheduling, logg))
				r.Post("/crew", controllers.ScheduleAssignCrew(params.Scheduling, logg))
				r.Post("/start", controllers.ScheduleStart(params.Scheduling, logg))
				r.Post("/complete", controllers.ScheduleComplete(params.Scheduling, logg))
			})
		})

		r.Route("/customers/{customerID}", func(r chi.Router) {
			r.Get("/schedule", controllers.CustomerSchedule(params.Scheduling, logg))
		})
	})

	return r
}
