package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"school-backend/internal/archive"
	"school-backend/internal/auth"
	"school-backend/internal/cache"
	"school-backend/internal/config"
	"school-backend/internal/database"
	"school-backend/internal/db"
	"school-backend/internal/handlers"
	"school-backend/internal/health"
	h "school-backend/internal/http"
	"school-backend/internal/middleware"
	"school-backend/internal/repositories"
	"school-backend/internal/services"
	"school-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache is optional; every cached path degrades to a miss
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	} else {
		log.Println("[Cache] Redis connected")
	}

	// Run schema migrations from the embedded filesystem
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Migrations failed: %v", err)
	}
	cancel()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	studentRepo := repositories.NewStudentRepository(pool)
	structureRepo := repositories.NewFeeStructureRepository(pool)
	recordRepo := repositories.NewFeeRecordRepository(pool)
	paymentRepo := repositories.NewFeePaymentRepository(pool)

	// Document archive (optional S3-compatible storage)
	uploader := archive.New(cfg)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	structureService := services.NewFeeStructureService(structureRepo)
	assignmentService := services.NewAssignmentService(structureRepo, studentRepo, recordRepo)
	recordService := services.NewFeeRecordService(recordRepo)
	paymentService := services.NewPaymentService(recordRepo, paymentRepo)
	classStatusService := services.NewClassStatusService(studentRepo, recordRepo)
	documentService := services.NewDocumentService(studentRepo, recordRepo, paymentRepo, uploader, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	studentHandler := handlers.NewStudentHandler(studentRepo)
	structureHandler := handlers.NewFeeStructureHandler(structureService, assignmentService)
	recordHandler := handlers.NewFeeRecordHandler(recordService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, paymentRepo)
	statsHandler := handlers.NewStatsHandler(recordRepo, paymentRepo, classStatusService, cfg)
	documentHandler := handlers.NewDocumentHandler(documentService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		userHandler,
		studentHandler,
		structureHandler,
		recordHandler,
		paymentHandler,
		statsHandler,
		documentHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("School fee backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
