package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	cmdbus "hypey-backend/application/commands/bus"
	querybus "hypey-backend/application/queries/bus"

	"hypey-backend/application/ports"
	"hypey-backend/infrastructure/config"
	"hypey-backend/interfaces/http/rest/handlers"
	"hypey-backend/interfaces/http/rest/middleware"
	"hypey-backend/pkg/auth"
	"hypey-backend/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	commandBus *cmdbus.CommandBus
	queryBus   *querybus.QueryBus
	images     ports.ImageStore
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *cmdbus.CommandBus,
	queryBus *querybus.QueryBus,
	images ports.ImageStore,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		images:     images,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.hypey.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	limiter := auth.NewIPRateLimiter(rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg.JWTSecret, limiter))

		appHandler := handlers.NewAppHandler(rt.commandBus, rt.queryBus, rt.logger)
		elementHandler := handlers.NewElementHandler(rt.commandBus, rt.queryBus, rt.logger)
		imageHandler := handlers.NewImageHandler(rt.images, rt.queryBus, rt.logger)

		r.Route("/app", func(r chi.Router) {
			r.Post("/init", appHandler.InitApp)
			r.Get("/", appHandler.GetApp)
		})

		r.Route("/collages", func(r chi.Router) {
			r.Get("/", appHandler.ListCollages)
			r.Post("/", appHandler.CreateCollage)
			r.Get("/{ref}", elementHandler.GetCollage)
			r.Post("/{ref}/elements", elementHandler.AddElement)
		})

		r.Route("/elements", func(r chi.Router) {
			r.Post("/{ref}/move", elementHandler.MoveElement)
			r.Post("/{ref}/resize", elementHandler.ResizeElement)
			r.Put("/{ref}/link", elementHandler.SetLink)
			r.Delete("/{ref}", elementHandler.DeleteElement)
		})

		r.Post("/images", imageHandler.Upload)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
