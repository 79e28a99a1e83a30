package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/leaveport/leaveport-backend-go/internal/config"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/middleware"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	profileHandler ProfileHandler,
	leaveHandler LeaveHandler,
	calendarHandler CalendarHandler,
	adminHandler AdminHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leaveport"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Get("/login/oauth/microsoft", authHandler.LoginWithMicrosoft)
			r.Get("/oauth/callback/microsoft", authHandler.OAuthCallbackMicrosoft)
			r.Get("/oauth/microsoft/consent", authHandler.Consent)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/session", authHandler.Session)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/me", profileHandler.Me)
				r.Post("/sync", profileHandler.Sync)
				r.Get("/route", profileHandler.Route)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Submit)
				r.Get("/{id}/edit", leaveHandler.EditDraft)
				r.Delete("/{id}", leaveHandler.Cancel)
				r.Delete("/", leaveHandler.ClearAll)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", calendarHandler.MonthView)
				r.Get("/upcoming", calendarHandler.Upcoming)
			})

			// Admin only (claim gate; the service re-checks the store)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/admin/users", adminHandler.Users)
			})
		})
	})
	return r
}
