package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/thirtydaygen/challenge-engine/docs"
	"github.com/thirtydaygen/challenge-engine/internal/adapters/cache"
	adapterHTTP "github.com/thirtydaygen/challenge-engine/internal/adapters/handler/http"
	"github.com/thirtydaygen/challenge-engine/internal/adapters/push"
	"github.com/thirtydaygen/challenge-engine/internal/adapters/repository"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
	"github.com/thirtydaygen/challenge-engine/internal/core/workers"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           30-Day Challenge Engine API
// @version         1.0
// @description     HTTP API for 30-day challenges: calendar tracking, idea search, leaderboard.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	serverPort := getenv("PORT", "8080")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var redisClient *redis.Client
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost != "" {
		redisClient, err = cache.NewRedisClient(
			redisHost,
			getenv("REDIS_PORT", "6379"),
			os.Getenv("REDIS_PASSWORD"),
			0,
		)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
			redisClient = nil
		} else {
			log.Println("Redis connected successfully.")
		}
	}

	userRepo := repository.NewPostgresUserRepository(db)
	progressRepo := repository.NewPostgresProgressRepository(db)
	ideaRepo := repository.NewPostgresIdeaRepository(db)
	subscriptionRepo := repository.NewPostgresSubscriptionRepository(db)

	var challengeRepo domain.ChallengeRepository = repository.NewPostgresChallengeRepository(db)
	if redisClient != nil {
		challengeRepo = repository.NewCachedChallengeRepository(challengeRepo, redisClient)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is required")
	}

	tokenService := services.NewTokenService(jwtSecret, "challenge-engine", 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo)
	challengeService := services.NewChallengeService(challengeRepo, progressRepo, nil)
	progressService := services.NewProgressService(progressRepo, challengeRepo, nil)
	ideaService := services.NewIdeaService(ideaRepo)
	leaderboardService := services.NewLeaderboardService(progressRepo, redisClient)

	pushSender := push.NewWebPushSender(
		getenv("VAPID_SUBSCRIBER", "mailto:admin@example.com"),
		os.Getenv("VAPID_PUBLIC_KEY"),
		os.Getenv("VAPID_PRIVATE_KEY"),
	)
	notificationService := services.NewNotificationService(subscriptionRepo, pushSender)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	reminderWorker := workers.NewReminderWorker(subscriptionRepo, pushSender, os.Getenv("REMINDER_SCHEDULE"))
	if err := reminderWorker.Start(workerCtx); err != nil {
		log.Fatalf("Critical: failed to start reminder worker: %v", err)
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authService, tokenService),
		ChallengeHandler:    adapterHTTP.NewChallengeHandler(challengeService),
		ProgressHandler:     adapterHTTP.NewProgressHandler(progressService),
		IdeaHandler:         adapterHTTP.NewIdeaHandler(ideaService),
		LeaderboardHandler:  adapterHTTP.NewLeaderboardHandler(leaderboardService),
		NotificationHandler: adapterHTTP.NewNotificationHandler(notificationService),
		TokenService:        tokenService,
		DB:                  db,
		Redis:               redisClient,
		StartTime:           startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Challenge Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
