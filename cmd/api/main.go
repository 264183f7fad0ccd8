package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	credentialService "github.com/cmlabs-hris/hris-attendance-go/internal/service/credential"
	monitoringService "github.com/cmlabs-hris/hris-attendance-go/internal/service/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/views"
)

const version = "v1.0.0"

type repositories struct {
	employee   employee.EmployeeRepository
	roster     schedule.RosterRepository
	attendance attendance.AttendanceRepository
	token      credential.TokenRepository
	monitoring monitoring.MonitoringRepository
	dashboard  dashboard.DashboardRepository
	close      func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "hris-attendance"), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()
	clk := clock.NewSystem(loc)

	repos, err := newRepositories(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer repos.close()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	hub := sse.NewHub()
	viewSvc := views.NewViewService(
		repos.attendance,
		repos.dashboard,
		repos.monitoring,
		cache.New(cfg.Views.CacheSize, cfg.Views.CacheTTL),
		hub,
		clk,
	)

	issuer, err := credentialService.NewIssuer(cfg.Attendance.QRSecret, clk)
	if err != nil {
		return fmt.Errorf("init credential issuer: %w", err)
	}
	credentialSvc := credentialService.NewCredentialService(repos.token, repos.employee, issuer, clk)

	ledger := attendanceService.NewLedgerGuard(repos.attendance, viewSvc, clk, cfg.Attendance.LedgerWriteTimeout)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.roster, credentialSvc, ledger, clk)
	automaton := monitoringService.NewAutomaton(repos.monitoring, repos.employee, viewSvc, clk)

	scheduler := cron.NewScheduler(ctx)
	cron.NewMonitoringJobs(automaton, cfg.Monitoring.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, viewSvc),
		Credential: appHTTP.NewCredentialHandler(credentialSvc),
		Dashboard:  appHTTP.NewDashboardHandler(viewSvc, clk),
		Monitoring: appHTTP.NewMonitoringHandler(automaton, viewSvc),
		Events:     appHTTP.NewEventsHandler(hub, JWTService),
		Health:     appHTTP.NewHealthHandler(scheduler, hub, clk),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "storage", cfg.Database.Driver, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRepositories(ctx context.Context, cfg *config.Config, clk clock.Clock) (*repositories, error) {
	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		employees := fixtures.SeedMemory(store, clk.Now(), 7)
		slog.Warn("Using in-memory storage with demo data", "employees", len(employees))
		return &repositories{
			employee:   memory.NewEmployeeRepository(store),
			roster:     memory.NewRosterRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			token:      memory.NewTokenRepository(store),
			monitoring: memory.NewMonitoringRepository(store),
			dashboard:  memory.NewDashboardRepository(store),
			close:      func() {},
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		loc := cfg.Location()
		return &repositories{
			employee:   postgresql.NewEmployeeRepository(db),
			roster:     postgresql.NewRosterRepository(db),
			attendance: postgresql.NewAttendanceRepository(db, loc),
			token:      postgresql.NewTokenRepository(db),
			monitoring: postgresql.NewMonitoringRepository(db),
			dashboard:  postgresql.NewDashboardRepository(db, loc),
			close:      db.Close,
		}, nil
	}
}
