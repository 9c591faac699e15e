package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/ponto-backend-go/internal/config"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
	appHTTP "github.com/cmlabs-hris/ponto-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/render"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/blob"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/ponto-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/ponto-backend-go/internal/service/auth"
	backupService "github.com/cmlabs-hris/ponto-backend-go/internal/service/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
	holidayService "github.com/cmlabs-hris/ponto-backend-go/internal/service/holiday"
	locationService "github.com/cmlabs-hris/ponto-backend-go/internal/service/location"
	reportService "github.com/cmlabs-hris/ponto-backend-go/internal/service/report"
	settingsService "github.com/cmlabs-hris/ponto-backend-go/internal/service/settings"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	policy, err := config.LoadPolicy(cfg.App.PolicyFile)
	if err != nil {
		log.Fatal("Failed to load work policy: ", err)
	}
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stateRepo state.Repository
	var transactor state.Transactor
	switch cfg.App.StateBackend {
	case config.StateBackendPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{})
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			log.Fatal("Failed to prepare database schema: ", err)
		}
		stateRepo = postgresql.NewStateRepository(db)
		transactor = postgresql.NewTransactor(db)
	case config.StateBackendMemory:
		slog.Warn("Using in-memory state, data is lost on restart")
		memoryRepo := memory.NewStateRepository()
		stateRepo = memoryRepo
		transactor = memoryRepo
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	attendanceRepo := blob.NewAttendanceStore(stateRepo)
	settingsRepo := blob.NewSettingsRepository(stateRepo)
	locationRepo := blob.NewLocationRepository(stateRepo)
	markRepo := blob.NewBackupMarkRepository(stateRepo)

	var source holiday.Source
	switch {
	case cfg.Holiday.SourceURL != "":
		source = holidayService.NewHTTPSource(cfg.Holiday.SourceURL, cfg.Holiday.FetchTimeout)
	case cfg.Holiday.SourceFile != "":
		source = holidayService.NewFileSource(cfg.Holiday.SourceFile)
	}
	holidayTable := holidayService.NewTable(source)
	holidayTable.Load(ctx)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	geocoder := geo.NewNominatimClient(cfg.Geocoder.URL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)

	if cfg.Admin.PINHash == "" {
		slog.Warn("ADMIN_PIN_HASH is not set, admin routes are closed")
	}

	fileService := file.NewFileService(fileStorage)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	locationSvc := locationService.NewLocationService(locationRepo, geocoder, locationService.DefaultNearbyRadius)
	holidaySvc := holidayService.NewHolidayService(holidayTable)
	authSvc := serviceAuth.NewAuthService(JWTService, cfg.Admin.PINHash)
	backupSvc := backupService.NewBackupService(
		attendanceRepo,
		settingsRepo,
		locationRepo,
		markRepo,
		transactor,
		fileStorage,
		loc,
		backupService.WithInterval(cfg.Backup.Interval),
		backupService.WithHub(hub),
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		settingsSvc,
		locationSvc,
		fileService,
		loc,
		attendanceService.WithBackupHook(backupSvc),
		attendanceService.WithHub(hub),
	)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		settingsSvc,
		holidayTable,
		policy,
		loc,
		reportService.WithRenderer(report.FormatPDF, render.ForFormat(report.FormatPDF)),
		reportService.WithRenderer(report.FormatXLSX, render.ForFormat(report.FormatXLSX)),
	)

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(holidaySvc, backupSvc, cfg.Holiday.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:         cfg.App.Env,
		Version:     version,
		FrontendURL: cfg.App.FrontendURL,
		UploadsDir:  cfg.Storage.BasePath,
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Location:   appHTTP.NewLocationHandler(locationSvc),
		Backup:     appHTTP.NewBackupHandler(backupSvc, loc),
		Events:     appHTTP.NewEventHandler(hub),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "state", cfg.App.StateBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
