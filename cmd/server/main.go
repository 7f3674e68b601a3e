package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/config"
	"github.com/Ayush-Repositories/decyber-v2/internal/database"
	"github.com/Ayush-Repositories/decyber-v2/internal/handler"
	"github.com/Ayush-Repositories/decyber-v2/internal/logger"
	"github.com/Ayush-Repositories/decyber-v2/internal/repository"
	"github.com/Ayush-Repositories/decyber-v2/internal/router"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/Ayush-Repositories/decyber-v2/internal/validator"
	ws "github.com/Ayush-Repositories/decyber-v2/internal/websocket"
	"github.com/Ayush-Repositories/decyber-v2/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Decyber Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	teamRepo := repository.NewTeamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	gameRepo := repository.NewGameRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	// ─── Initialize Hub and Services ───────────────────────────────────
	hub := ws.NewHub(log)
	snapshotService := service.NewSnapshotService(teamRepo, questionRepo, gameRepo, hub, log)

	authService := service.NewAuthService(cfg, rdb)
	gameService := service.NewGameService(gameRepo, snapshotService, log)
	teamService := service.NewTeamService(teamRepo, authService, snapshotService, log)
	questionService := service.NewQuestionService(questionRepo, snapshotService, log)
	quizService := service.NewQuizService(questionRepo, teamRepo, gameService, snapshotService, log)
	writtenService := service.NewWrittenService(questionRepo, teamRepo, submissionRepo, gameService, snapshotService, rdb, log)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, teamService),
		Team:     handler.NewTeamHandler(teamService),
		Question: handler.NewQuestionHandler(questionService, quizService),
		Game:     handler.NewGameHandler(gameService),
		Quiz:     handler.NewQuizHandler(quizService),
		Written:  handler.NewWrittenHandler(writtenService),
		Media:    handler.NewMediaHandler(mediaService),
		WS:       handler.NewWSHandler(hub, snapshotService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	submissionWorker := worker.NewSubmissionWorker(pool, rdb, log)
	go submissionWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the background worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
