package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/config"
	"github.com/b4os-dev/classboard-api/internal/database"
	"github.com/b4os-dev/classboard-api/internal/handler"
	"github.com/b4os-dev/classboard-api/internal/middleware"
	"github.com/b4os-dev/classboard-api/internal/models"
	"github.com/b4os-dev/classboard-api/internal/repository"
	"github.com/b4os-dev/classboard-api/internal/router"
	"github.com/b4os-dev/classboard-api/internal/service"
	"github.com/b4os-dev/classboard-api/pkg/github"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Assignment{},
		&models.Grade{},
		&models.LeaderboardSnapshot{},
		&models.ProgramStats{},
		&models.ReviewAssignment{},
		&models.ReviewComment{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, repository metadata will not be cached")
	}

	githubClient := github.New(github.Config{
		Token:        cfg.GitHubToken,
		Organization: cfg.GitHubOrganization,
	}, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	assignmentService := service.NewAssignmentService(assignmentRepo, logger)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, gradeRepo, assignmentRepo, studentRepo, logger)
	statsService := service.NewStatsService(statsRepo, gradeRepo, assignmentRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, validate, logger)
	overviewService := service.NewOverviewService(leaderboardService, statsService, reviewService, assignmentService, logger)
	snapshotService := service.NewSnapshotService(studentRepo, gradeRepo, assignmentRepo, leaderboardRepo, statsRepo, logger)
	repoMetadataService := service.NewRepoMetadataService(githubClient, redisClient, cfg.RepoCacheTTL, logger)

	leaderboardHandler := handler.NewLeaderboardHandler(overviewService, leaderboardService, assignmentService, logger)
	studentHandler := handler.NewStudentHandler(leaderboardService, reviewService, repoMetadataService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	adminHandler := handler.NewAdminHandler(snapshotService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		LeaderboardHandler: leaderboardHandler,
		StudentHandler:     studentHandler,
		ReviewHandler:      reviewHandler,
		AdminHandler:       adminHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
