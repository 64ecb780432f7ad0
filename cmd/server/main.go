package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"

	handler "github.com/taskvault/api/internal/adapters/handler/http"
	"github.com/taskvault/api/internal/adapters/password"
	"github.com/taskvault/api/internal/adapters/repository/postgres"
	"github.com/taskvault/api/internal/adapters/token"
	"github.com/taskvault/api/internal/config"
	"github.com/taskvault/api/internal/core/services"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	todoRepo := postgres.NewTodoRepository(db)

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	codec := token.NewCodec([]byte(cfg.TokenSecret))

	userSvc, err := services.NewUserService(userRepo, hasher, codec)
	if err != nil {
		logger.Error("failed to build user service", "error", err)
		os.Exit(1)
	}
	todoSvc := services.NewTodoService(todoRepo)

	userHandler := handler.NewUserHandler(userSvc)
	todoHandler := handler.NewTodoHandler(todoSvc)
	authMW := handler.NewAuthMiddleware(userSvc)

	router := handler.NewHandler(userHandler, todoHandler, authMW, db.PingContext, cfg.AllowedOrigins)

	server := &stdhttp.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
