package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hmranwar/guardpost-backend/api/routes"
	"github.com/hmranwar/guardpost-backend/internal/attendance"
	"github.com/hmranwar/guardpost-backend/internal/auth"
	"github.com/hmranwar/guardpost-backend/internal/clients"
	"github.com/hmranwar/guardpost-backend/internal/employees"
	"github.com/hmranwar/guardpost-backend/internal/generalinv"
	"github.com/hmranwar/guardpost-backend/internal/leaveperiods"
	"github.com/hmranwar/guardpost-backend/internal/payroll"
	"github.com/hmranwar/guardpost-backend/internal/restrictedinv"
	"github.com/hmranwar/guardpost-backend/internal/users"
	"github.com/hmranwar/guardpost-backend/internal/vehicles"
	"github.com/hmranwar/guardpost-backend/pkg/auth/session"
	"github.com/hmranwar/guardpost-backend/pkg/config"
	"github.com/hmranwar/guardpost-backend/pkg/db"
	"github.com/hmranwar/guardpost-backend/pkg/instance"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
	"github.com/hmranwar/guardpost-backend/pkg/metrics"
	"github.com/hmranwar/guardpost-backend/pkg/migrate"
	"github.com/hmranwar/guardpost-backend/pkg/pubsub"
	"github.com/hmranwar/guardpost-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	// Leave events are optional infrastructure. A nil publisher keeps the
	// reconciler working in environments without a GCP project.
	var leaveEvents *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		leaveEvents, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := leaveEvents.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	reconcilerMetrics := metrics.NewReconcilerMetrics(registry)

	gdb := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gdb),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	leaveRepo := leaveperiods.NewRepository(gdb)
	leaveService, err := leaveperiods.NewService(leaveRepo, leaveEvents, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create leave periods service", err)
		os.Exit(1)
	}

	attendanceService, err := attendance.NewService(
		attendance.NewRepository(gdb),
		leaveRepo,
		dbClient,
		leaveEvents,
		logg,
		reconcilerMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create attendance service", err)
		os.Exit(1)
	}

	employeeRepo := employees.NewRepository(gdb)
	employeeService, err := employees.NewService(employeeRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create employees service", err)
		os.Exit(1)
	}

	vehicleService, err := vehicles.NewService(vehicles.NewRepository(gdb), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicles service", err)
		os.Exit(1)
	}

	clientService, err := clients.NewService(clients.NewRepository(gdb), employeeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create clients service", err)
		os.Exit(1)
	}

	generalInvService, err := generalinv.NewService(generalinv.NewRepository(gdb), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create general inventory service", err)
		os.Exit(1)
	}

	restrictedInvService, err := restrictedinv.NewService(restrictedinv.NewRepository(gdb), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create restricted inventory service", err)
		os.Exit(1)
	}

	payrollService, err := payroll.NewService(payroll.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create payroll service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, registry, routes.Services{
		Auth:          authService,
		Attendance:    attendanceService,
		LeavePeriods:  leaveService,
		Employees:     employeeService,
		Vehicles:      vehicleService,
		Clients:       clientService,
		GeneralInv:    generalInvService,
		RestrictedInv: restrictedInvService,
		Payroll:       payrollService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
