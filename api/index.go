package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/app"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/config"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/handlers"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/logging"
	"go.uber.org/zap"
)

var r http.Handler

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()
	gin.SetMode(gin.ReleaseMode)

	logger, err := logging.New("info")
	if err != nil {
		logger = zap.NewNop()
	}
	r = setup(logger)
}

func setup(logger *zap.Logger) http.Handler {
	cfg, err := config.Load("")
	if err != nil {
		return unavailable(logger, err)
	}
	a, err := app.Open(cfg, logger)
	if err != nil {
		return unavailable(logger, err)
	}
	h, err := handlers.New(a.Auth, a.Repo, logger)
	if err != nil {
		return unavailable(logger, err)
	}
	return handlers.NewRouter(h)
}

func unavailable(logger *zap.Logger, err error) http.Handler {
	logger.Error("Startup failed", zap.Error(err))
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
