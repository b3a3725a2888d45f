package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/config"
	"github.com/coffeegram/coffee-backend/internal/queue"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/logger"
	"github.com/coffeegram/coffee-backend/pkg/push"
)

func main() {
	config.LoadDotEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.local.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Env)
	log := logger.GetLogger()
	log.Info().Str("env", cfg.App.Env).Msg("starting coffee-backend worker")

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(1)
	}

	tokenRepo := repository.NewDeviceTokenRepository(db)
	pusher := push.NewClient(cfg.Push.Endpoint, cfg.Push.ServerKey)

	worker := queue.NewWorker(
		queue.Addr(cfg.Redis.Host, cfg.Redis.Port),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Queue.Concurrency,
		tokenRepo,
		pusher,
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down worker")
		worker.Shutdown()
	}()

	if err := worker.Run(); err != nil {
		log.Error().Err(err).Msg("worker stopped")
		os.Exit(1)
	}
}
