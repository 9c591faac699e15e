package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries what the router needs besides the handlers.
type RouterConfig struct {
	Env         string
	Version     string
	FrontendURL string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Holiday    HolidayHandler
	Settings   SettingsHandler
	Location   LocationHandler
	Backup     BackupHandler
	Events     EventHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-backend"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg.FrontendURL),
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// Streams stay open for hours.
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/events"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Get("/events", h.Events.Stream)

		// Kiosk routes
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentEncoding("application/json"))

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", h.Attendance.Record)
				r.Get("/", h.Attendance.List)
				r.Get("/today", h.Attendance.Today)
				r.Get("/{date}", h.Attendance.Day)
			})

			r.Get("/history", h.Report.History)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/period", h.Report.Period)
				r.Get("/monthly", h.Report.Monthly)
				r.Get("/monthly/export", h.Report.ExportMonthly)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Get("/{date}", h.Holiday.Get)
			})

			r.Route("/location", func(r chi.Router) {
				r.Get("/", h.Location.Current)
				r.Post("/", h.Location.Resolve)
			})

			r.Get("/settings", h.Settings.Get)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.AdminOnly)

			r.Put("/settings", h.Settings.Save)
			r.Get("/backup", h.Backup.Export)
			r.Post("/backup/import", h.Backup.Import)
		})
	})
	return r
}

func allowedOrigins(frontendURL string) []string {
	var origins []string
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
