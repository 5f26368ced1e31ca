package main

import (
	"log"
	"time"

	"lumina-chat/config"
	"lumina-chat/internal/domain/message"
	"lumina-chat/internal/domain/user"
	"lumina-chat/internal/genai"
	"lumina-chat/internal/handler"
	appredis "lumina-chat/internal/redis"
	"lumina-chat/internal/repository"
	"lumina-chat/internal/server"
	"lumina-chat/internal/services"
	"lumina-chat/pkg/database"
	"lumina-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	loggerMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		loggerMode = logger.ProductionMode
	}
	l := logger.New(loggerMode)
	logger.SetGlobalLogger(l)
	defer func() { _ = l.Logger.Sync() }()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.ApplyRawMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &message.Message{}); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := appredis.NewClient(appredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := appredis.NewRateLimiter(redisClient, appredis.DefaultRateLimitConfig())

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	tokens := services.NewTokenIssuer(cfg)
	authService := services.NewAuthService(userRepo, tokens)

	model := genai.NewGeminiClient(genai.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	tags := services.NewTagPicker(time.Now().UnixNano())
	chatService := services.NewChatService(
		messageRepo,
		model,
		tags,
		cfg.AIRetryMax,
		time.Duration(cfg.AIRetryDelayMs)*time.Millisecond,
		l,
	)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth: handler.NewAuthHandler(authService, l),
		Chat: handler.NewChatHandler(chatService, l),
	}, tokens, limiter, db)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
