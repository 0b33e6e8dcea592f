// Package app wires configuration, database, storage and auth for the binaries.
package app

import (
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/auth"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/config"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/database"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/storage"
	"go.uber.org/zap"
)

// App holds the shared dependencies
type App struct {
	Config config.Config
	Log    *zap.Logger
	Auth   *auth.Authenticator
	Repo   *storage.Repository
}

// Open connects to the configured database and makes sure an operator account exists
func Open(cfg config.Config, log *zap.Logger) (*App, error) {
	db, err := database.InitDB(database.Options{DSN: cfg.DatabaseURL, Path: cfg.DataPath})
	if err != nil {
		return nil, err
	}

	a := &auth.Authenticator{DB: db, Secret: []byte(cfg.JWTSecret)}
	created, err := a.EnsureAdminExists(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info("Default admin user created", zap.String("username", cfg.AdminUsername))
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty; tokens are signed with an empty key")
	}

	repo := storage.NewRepository(&database.KV{DB: db}, log, cfg.DefaultHourlyRate)
	return &App{Config: cfg, Log: log, Auth: a, Repo: repo}, nil
}
