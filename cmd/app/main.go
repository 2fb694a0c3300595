package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/config"
	"github.com/BuzzLyutic/todo-app/internal/handler"
	"github.com/BuzzLyutic/todo-app/internal/logging"
	"github.com/BuzzLyutic/todo-app/internal/repo"
	"github.com/BuzzLyutic/todo-app/internal/server"
	"github.com/BuzzLyutic/todo-app/internal/service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Подключаем логгер
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключаем БД. Без неё дальнейшая работа теряет смысл
	store, err := repo.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Successfully connected to the database")

	created, err := store.Bootstrap(ctx)
	if err != nil {
		logger.Error("Failed to bootstrap todos storage", zap.Error(err))
	}

	taskService := service.NewTaskService(store)
	if created && cfg.SeedExample {
		if task, err := taskService.SeedExample(ctx); err != nil {
			logger.Error("Failed to seed example task", zap.Error(err))
		} else {
			logger.Info("Example task added", zap.String("id", task.ID))
		}
	}

	taskHandler := handler.NewTaskHandler(taskService, logger)
	router := server.NewRouter(taskHandler, logger, cfg.CORSOrigins)

	srv := server.New(cfg.Address(), router, cfg.ShutdownTimeout, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server failed", zap.Error(err))
		store.Close()
		logger.Sync()
		os.Exit(1)
	}
}
