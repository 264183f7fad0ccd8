package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the transport settings taken from config
type RouterConfig struct {
	Env            string
	Version        string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Attendance AttendanceHandler
	Credential CredentialHandler
	Dashboard  DashboardHandler
	Monitoring MonitoringHandler
	Events     EventsHandler
	Health     HealthHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {

		// SSE authenticates with the short-lived token in the query string
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionAttendanceScan)).Post("/scan", h.Attendance.Scan)
				r.With(middleware.RequirePermission(auth.PermissionAttendanceView)).Get("/employees/{employeeID}", h.Attendance.GetEmployeeAttendance)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(auth.PermissionAttendanceView))
				r.Get("/daily", h.Dashboard.GetDaily)
				r.Get("/roster-attendance", h.Dashboard.GetRosterAttendance)
			})

			r.With(middleware.RequirePermission(auth.PermissionCredentialIssue)).Post("/credentials/{employeeID}", h.Credential.Issue)

			r.Route("/leave-monitoring", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionMonitoringView)).Get("/", h.Monitoring.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(auth.PermissionMonitoringManage))
					r.Post("/", h.Monitoring.Enroll)
					r.Put("/{employeeID}/leave", h.Monitoring.RecordLeave)
					r.Post("/recompute", h.Monitoring.Recompute)
				})
			})

			r.With(middleware.RequirePermission(auth.PermissionEventsSubscribe)).Get("/events/token", h.Events.GetSSEToken)
		})
	})
	return r
}
