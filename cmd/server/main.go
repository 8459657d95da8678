package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/riqqqq/Human-Resource-Management/internal/config"
	"github.com/riqqqq/Human-Resource-Management/internal/db"
	"github.com/riqqqq/Human-Resource-Management/internal/handler"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
	"github.com/riqqqq/Human-Resource-Management/internal/server"
	"github.com/riqqqq/Human-Resource-Management/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	handler.SetVerboseErrors(cfg.Dev())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "err", err)
		os.Exit(1)
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	employeeRepo := repository.EmployeeRepository{DB: pg}
	attendanceRepo := repository.AttendanceRepository{DB: pg}
	dashboardRepo := repository.DashboardRepository{DB: pg}

	// services
	authSvc := service.AuthService{
		Secret:    cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Users:     userRepo,
		Employees: employeeRepo,
		Logger:    logger,
	}
	attendanceSvc := service.AttendanceService{Attendance: attendanceRepo, Employees: employeeRepo}
	accountSvc := service.AccountService{Users: userRepo, Employees: employeeRepo, Logger: logger}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	employeeHandler := handler.EmployeeHandler{Repo: employeeRepo}
	attendanceHandler := handler.AttendanceHandler{
		Service: attendanceSvc,
		Repo:    attendanceRepo,
		Photos:  handler.PhotoStore{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes},
	}
	userHandler := handler.UserHandler{Repo: userRepo, Accounts: accountSvc}
	dashboardHandler := handler.DashboardHandler{Repo: dashboardRepo}
	docsHandler := handler.DocsHandler{OpenAPIPath: "api/openapi.yaml"}

	router := server.NewRouter(cfg, logger, healthHandler, authHandler, employeeHandler, attendanceHandler, userHandler, dashboardHandler, docsHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
