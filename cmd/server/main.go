package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/app"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/config"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/handlers"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	a, err := app.Open(cfg, logger)
	if err != nil {
		logger.Fatal("could not open storage", zap.Error(err))
	}
	h, err := handlers.New(a.Auth, a.Repo, logger)
	if err != nil {
		logger.Fatal("could not load state", zap.Error(err))
	}

	r := handlers.NewRouter(h)
	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
