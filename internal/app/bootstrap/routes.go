// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/servehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/servehub/internal/app/features/health"
	schedulesfeature "github.com/dalemusser/servehub/internal/app/features/schedules"
	"github.com/dalemusser/servehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. ServeHub mounts the health check and the
// schedules API (wizard sessions and schedule reads).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if steps == nil {
		return nil, errors.New("wizard step registry not loaded")
	}
	return newRouter(appCfg, deps, logger), nil
}

func newRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) chi.Router {
	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Request IDs are attached to every error log line.
	r.Use(middleware.RequestID)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ServeHubMongoClient, steps, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Schedule wizard and schedule reads
	schedulesHandler := schedulesfeature.NewHandler(deps.ServeHubMongoDatabase, steps, appCfg.WizardDraftTTL, errLog, logger)
	if appCfg.WizardStartRate > 0 {
		schedulesHandler.StartLimiter = ratelimit.New(appCfg.WizardStartRate, time.Minute)
	}
	r.Mount("/schedules", schedulesfeature.Routes(schedulesHandler))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.RenderNotFound(w, r, "No such endpoint.")
	})

	return r
}
