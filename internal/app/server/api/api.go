//GET    /api/resources        # Served resource definitions
//GET    /api/{resource}       # List records (?q= filter, ?sort= order)
//POST   /api/{resource}       # Create record
//GET    /api/{resource}/{id}  # Get record
//PUT    /api/{resource}/{id}  # Update record (merge)
//DELETE /api/{resource}/{id}  # Delete record
//GET    /api/v1/health        # Health check

package api

import (
	healthAPI "stockroom/internal/app/server/api/http/health"
	"stockroom/internal/app/server/api/http/middleware"
	"stockroom/internal/app/server/api/http/middleware/logger"
	resourceAPI "stockroom/internal/app/server/api/http/resource"
	"stockroom/internal/domain/resource"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Resource *resourceAPI.Handler
}

// New builds a *chi.Mux with every operation registered through
// huma.Register. The repository decides where records live; the routes do
// not care.
func New(registry *resource.Registry, repo resource.Repository, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.Recoverer)

	config := huma.DefaultConfig("Stockroom API", "1.0.0")

	API := humachi.New(mux, config)

	h := handlers(registry, repo, log)
	h.Health.SetupRoutes(API)
	h.Resource.SetupRoutes(API)

	return mux
}

func handlers(registry *resource.Registry, repo resource.Repository, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	resourceService := resource.NewService(registry, repo, log)
	middlewares.Add(loggerMW.Middleware())
	resourceHandler := resourceAPI.NewHandler(resourceService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		Resource: resourceHandler,
	}
}
