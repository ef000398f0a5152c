package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tamrino/trainer-app/internal/api"
	"tamrino/trainer-app/internal/config"
	"tamrino/trainer-app/internal/repository/postgres"
	"tamrino/trainer-app/internal/service"
	"tamrino/trainer-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Trainer App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := postgres.ConnectDB(ctx, cfg.Database.URL)
	cancel()
	if err != nil {
		log.Fatalf("FATAL: Could not connect to Postgres: %v", err)
	}
	defer func() {
		log.Println("Closing database pool...")
		pool.Close()
	}()
	log.Println("Database connection established.")

	// --- Schema Migration ---
	log.Println("Applying database schema...")
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 1*time.Minute)
	err = postgres.Migrate(migrateCtx, pool)
	cancelMigrate()
	if err != nil {
		log.Fatalf("FATAL: Schema migration failed: %v", err)
	}

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	trainerRepo := postgres.NewTrainerRepository(pool)
	studentRepo := postgres.NewStudentRepository(pool)
	exerciseCatalogRepo := postgres.NewExerciseCatalogRepository(pool)
	mealCatalogRepo := postgres.NewMealCatalogRepository(pool)
	supplementCatalogRepo := postgres.NewSupplementCatalogRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	supportRepo := postgres.NewSupportRepository(pool)
	preferenceRepo := postgres.NewPreferenceRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	mediaRepo := postgres.NewMediaRepository(pool)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	tenantService := service.NewTenantService(trainerRepo, cfg.Auth.TrainerCode, cfg.Auth.DefaultTrainerPhone)
	authService := service.NewAuthService(sessionRepo, studentRepo, tenantService, service.AuthConfig{
		Secret:           cfg.Session.Secret,
		SessionTTL:       cfg.Session.TTL,
		RememberTTL:      cfg.Session.RememberTTL,
		TrainerCode:      cfg.Auth.TrainerCode,
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockoutDuration:  time.Duration(cfg.Auth.LockoutMinutes) * time.Minute,
	})
	studentService := service.NewStudentService(studentRepo, historyRepo)
	catalogService := service.NewCatalogService(exerciseCatalogRepo, mealCatalogRepo, supplementCatalogRepo, mediaRepo, fileStorage)
	programService := service.NewProgramService(assignmentRepo, historyRepo)
	supportService := service.NewSupportService(supportRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo)
	mediaService := service.NewMediaService(mediaRepo, exerciseCatalogRepo, fileStorage)

	// --- Session Cleanup ---
	// Expired sessions are also rejected at resolve time; this sweep
	// just keeps the table from growing without bound.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			sweepCtx, cancelSweep := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := sessionRepo.DeleteExpired(sweepCtx); err != nil {
				log.Printf("ERROR: session sweep failed: %v", err)
			}
			cancelSweep()
		}
	}()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	handlers := api.NewHandlers(
		authService,
		tenantService,
		studentService,
		catalogService,
		programService,
		supportService,
		preferenceService,
		mediaService,
		cfg.Session.CookieName,
		cfg.Session.TTL,
		cfg.Session.RememberTTL,
	)
	api.SetupRoutes(router, handlers, authService, cfg.Session.CookieName)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
