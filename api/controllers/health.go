package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sunfieldhq/solarops-backend/api/responses"
	"github.com/sunfieldhq/solarops-backend/pkg/config"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
)

const envHeader = "X-SolarOps-Env"

// Pinger is implemented by every backing service the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks every wired backing service. Optional dependencies pass
// a nil pinger and are reported as skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logCtx := logg.WithField(ctx, "dependency", name)
					logg.Error(logCtx, "readiness check failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "backing service unavailable").
					WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
