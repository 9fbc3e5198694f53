package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/vidtube-server/internal/api/http/handler"
	"github.com/dtroode/vidtube-server/internal/api/http/middleware"
	"github.com/dtroode/vidtube-server/internal/api/http/response"
	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	auth           *handler.Auth
	user           *handler.User
	health         *handler.Health
	authenticate   *middleware.Authenticate
	rateLimiter    *middleware.RateLimiter
	metrics        model.MetricsRecorder
	metricsHandler http.Handler
	corsOrigin     string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	auth *handler.Auth,
	user *handler.User,
	health *handler.Health,
	authenticate *middleware.Authenticate,
	rateLimiter *middleware.RateLimiter,
	metrics model.MetricsRecorder,
	metricsHandler http.Handler,
	corsOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:           auth,
		user:           user,
		health:         health,
		authenticate:   authenticate,
		rateLimiter:    rateLimiter,
		metrics:        metrics,
		metricsHandler: metricsHandler,
		corsOrigin:     corsOrigin,
		logger:         logger,
	}
}

// Register builds the HTTP handler serving the whole API.
func (rt *Router) Register() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecovery(rt.logger))
	r.Use(middleware.NewLogging(rt.logger).Handle)
	r.Use(middleware.NewMetrics(rt.metrics))
	r.Use(middleware.NewCORS(rt.corsOrigin))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, rt.logger, &apierrors.APIError{Kind: apierrors.KindNotFound, HTTPCode: http.StatusNotFound, Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, rt.logger, &apierrors.APIError{Kind: apierrors.KindValidation, HTTPCode: http.StatusMethodNotAllowed, Message: "method not allowed"})
	})

	r.Get("/healthz", rt.health.Check)
	r.Handle("/metrics", rt.metricsHandler)

	r.Route("/api/v1/users", rt.registerUserRoutes)

	return r
}

func (rt *Router) registerUserRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(rt.rateLimiter.Middleware)
		r.Post("/register", rt.auth.Register)
		r.Post("/login", rt.auth.Login)
		r.Post("/refresh-token", rt.auth.RefreshToken)
	})

	r.With(rt.authenticate.Optional).Get("/c/{username}", rt.user.ChannelProfile)

	r.Group(func(r chi.Router) {
		r.Use(rt.authenticate.Required)
		r.Post("/logout", rt.auth.Logout)
		r.Post("/change-password", rt.auth.ChangePassword)
		r.Get("/current-user", rt.user.CurrentUser)
		r.Patch("/update-account", rt.user.UpdateAccount)
		r.Patch("/update-avatar", rt.user.UpdateAvatar)
		r.Patch("/update-cover-image", rt.user.UpdateCoverImage)
		r.Get("/watch-history", rt.user.WatchHistory)
	})
}
