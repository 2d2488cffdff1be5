package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gyanghar/internal/config"
	"gyanghar/internal/database"
	"gyanghar/internal/handlers"
	"gyanghar/internal/repository"
	"gyanghar/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations for the active dialect
	migrationsDir := filepath.Join(cfg.MigrationsPath, db.Dialect.MigrationsSubdir())
	if err := db.RunMigrations(migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.FrontendURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	authService := service.NewAuthService(userRepo, emailService, cfg.JWTSecret, cfg.JWTExpiry)
	entryService := service.NewEntryService(entryRepo, userRepo, assignmentRepo)
	reportService := service.NewReportService(userRepo, entryRepo, assignmentRepo, emailService,
		cfg.WeeklyReportSchedule, cfg.CronTimezone)

	// Start the weekly report scheduler
	if err := reportService.StartScheduler(); err != nil {
		log.Fatalf("Failed to start report scheduler: %v", err)
	}
	defer reportService.StopScheduler()

	// Initialize handlers
	middleware := handlers.NewMiddleware(userRepo, cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(authService)
	entryHandler := handlers.NewEntryHandler(entryService)
	userHandler := handlers.NewUserHandler(userRepo, assignmentRepo)
	reportHandler := handlers.NewReportHandler(reportService, emailService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	// Authenticated routes
	mux.HandleFunc("POST /api/auth/change-password", middleware.RequireAuth(authHandler.ChangePassword))
	mux.HandleFunc("POST /api/accountability", middleware.RequireAuth(entryHandler.SubmitEntry))
	mux.HandleFunc("GET /api/accountability/list", middleware.RequireAuth(entryHandler.ListEntries))

	// Leader routes
	mux.HandleFunc("GET /api/users", middleware.RequireLeader(userHandler.ListUsers))
	mux.HandleFunc("GET /api/assignments/poshak", middleware.RequireLeader(userHandler.ListPoshakAssignments))

	// Admin routes
	mux.HandleFunc("POST /api/users/{id}/approve", middleware.RequireAdmin(userHandler.ApproveUser))
	mux.HandleFunc("POST /api/assignments/poshak", middleware.RequireAdmin(userHandler.AssignPoshak))
	mux.HandleFunc("POST /api/assignments/monitor", middleware.RequireAdmin(userHandler.AssignMonitor))
	mux.HandleFunc("POST /api/reports/weekly/send", middleware.RequireAdmin(reportHandler.TriggerWeeklyDigest))
	mux.HandleFunc("GET /api/reports/weekly/preview/{studentId}", middleware.RequireAdmin(reportHandler.PreviewStudentReport))
	mux.HandleFunc("POST /api/reports/weekly/email/{studentId}", middleware.RequireAdmin(reportHandler.EmailStudentReport))
	mux.HandleFunc("GET /api/reports/cron/status", middleware.RequireAdmin(reportHandler.CronStatus))
	mux.HandleFunc("POST /api/reports/email/test", middleware.RequireAdmin(reportHandler.TestEmail))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
