package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/bot"
	"github.com/utkarshdubey2008/InstaPoster/internal/config"
	"github.com/utkarshdubey2008/InstaPoster/internal/database"
	"github.com/utkarshdubey2008/InstaPoster/internal/handler"
	"github.com/utkarshdubey2008/InstaPoster/internal/instagram"
	"github.com/utkarshdubey2008/InstaPoster/internal/jobs"
	"github.com/utkarshdubey2008/InstaPoster/internal/middleware"
	"github.com/utkarshdubey2008/InstaPoster/internal/redis"
	"github.com/utkarshdubey2008/InstaPoster/internal/repository"
	"github.com/utkarshdubey2008/InstaPoster/internal/service"
	"github.com/utkarshdubey2008/InstaPoster/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("RENDER") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(pingCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	pingCancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	historyRepo := repository.NewPublishHistoryRepository(db.DB)
	stateRepo := repository.NewOAuthStateRepository(redisClient)

	instagramClient := instagram.NewClient(cfg.InstagramAppID, cfg.InstagramAppSecret, cfg.RedirectURI)

	stateService := service.NewOAuthStateService(stateRepo, cfg.OAuthStateTTL())
	connectService := service.NewConnectService(userRepo, stateService, instagramClient)
	publisherService := service.NewPublisherService(
		instagramClient, historyRepo, cfg.PublishPollInterval(), cfg.PublishPollAttempts,
	)
	staging := service.NewStagingCache()

	telegramBot, err := bot.New(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}

	sessions := session.NewManager(
		userRepo, historyRepo, staging, connectService, publisherService, telegramBot, cfg.MediaURLBase(),
	)

	oauthHandler := handler.NewOAuthHandler(connectService, sessions)
	systemHandler := handler.NewSystemHandler(db, redisClient, userRepo)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/", systemHandler.Home)
	r.Get("/health", systemHandler.Health)
	r.Get("/oauth/callback", oauthHandler.Callback)
	r.Post("/deauth", systemHandler.Deauthorize)
	r.Post("/delete", systemHandler.DataDeletion)

	cleanupJob := jobs.NewCleanupJob(staging, cfg.StagingTTL(), config.StagingSweepInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	botCtx, botCancel := context.WithCancel(context.Background())
	defer botCancel()
	go telegramBot.Run(botCtx, sessions)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	botCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
