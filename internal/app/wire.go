package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northstack/leadgen/internal/auth"
	"github.com/northstack/leadgen/internal/guard"
	"github.com/northstack/leadgen/internal/handler"
	adminhandler "github.com/northstack/leadgen/internal/handler/admin"
	"github.com/northstack/leadgen/internal/repository"
	"github.com/northstack/leadgen/internal/service"
)

// Public form submissions allowed per client IP per window.
const (
	submitLimit  = 10
	submitWindow = time.Minute
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool         *pgxpool.Pool
	JWTMgr       *auth.JWTManager
	Producer     service.EventPublisher
	Logger       *slog.Logger
	CORSOrigins  []string
	ExposeErrors bool
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	userRepo := repository.NewPgAdminUserRepository()
	sessionRepo := repository.NewPgAdminSessionRepository()
	subRepo := repository.NewPgSubmissionRepository()

	// Guards
	loginGuard := guard.NewLoginGuard(pool)
	submitLimiter := guard.NewRateLimiter(submitLimit, submitWindow)

	// Services
	authSvc := service.NewAdminAuthService(pool, userRepo, sessionRepo, jwtMgr, loginGuard)
	subSvc := service.NewSubmissionService(pool, subRepo, deps.Producer, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	subHandler := handler.NewSubmissionHandler(subSvc, submitLimiter)

	// Admin handlers
	subAdmin := adminhandler.NewSubmissionAdminHandler(subSvc)
	statusAdmin := adminhandler.NewStatusAdminHandler(subSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters). CORS sits before auth so
	// preflight requests short-circuit with 204 and never reach token
	// verification.
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.PreflightNoContent)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	r.Use(handler.JSONContentType)
	r.Use(handler.ErrorExposure(deps.ExposeErrors))

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Public form endpoints (no auth, IP rate-limited)
	r.Post("/contact", subHandler.CreateContact)
	r.Post("/lead", subHandler.CreateLead)
	r.Post("/quote", subHandler.CreateQuote)

	// Admin API
	r.Route("/api-admin", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthenticateAdmin(jwtMgr))

			r.Get("/contacts", subAdmin.ListContacts)
			r.Get("/leads", subAdmin.ListLeads)
			r.Get("/quotes", subAdmin.ListQuotes)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.WriteRoles()...))
				r.Patch("/status", statusAdmin.UpdateStatus)
				r.Put("/status", statusAdmin.UpdateStatus)
			})
		})
	})

	return r
}
