package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/auth"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/storage"
	"go.uber.org/zap"
)

// Handler contains dependencies for the route handlers. All state access is
// serialized: the engine has a single operator and no concurrent mutation.
type Handler struct {
	Auth *auth.Authenticator
	Repo *storage.Repository
	Log  *zap.Logger

	mu     sync.Mutex
	state  *scheduler.Scheduler
	params models.PayParams
}

// New loads the stored state and returns a ready handler
func New(a *auth.Authenticator, repo *storage.Repository, log *zap.Logger) (*Handler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	state, err := repo.Load()
	if err != nil {
		return nil, err
	}
	params, err := repo.LoadPayParams()
	if err != nil {
		return nil, err
	}
	return &Handler{Auth: a, Repo: repo, Log: log, state: state, params: params}, nil
}

// persistFunc writes the slots touched by a mutation
type persistFunc func(*storage.Repository, *scheduler.Scheduler) error

func persistShifts(r *storage.Repository, s *scheduler.Scheduler) error {
	return r.SaveShifts(s.Shifts())
}

func persistShiftTypes(r *storage.Repository, s *scheduler.Scheduler) error {
	return r.SaveShiftTypes(s.ShiftTypes())
}

func persistNotes(r *storage.Repository, s *scheduler.Scheduler) error {
	return r.SaveNotes(s.Notes())
}

func persistAll(r *storage.Repository, s *scheduler.Scheduler) error {
	return r.Save(s)
}

// mutate applies fn to a copy of the state and publishes it only after it was
// persisted, so a failed operation changes nothing.
func (h *Handler) mutate(fn func(*scheduler.Scheduler) error, persist persistFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := h.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := persist(h.Repo, next); err != nil {
		return err
	}
	h.state = next
	return nil
}

// read runs fn against the current state
func (h *Handler) read(fn func(*scheduler.Scheduler)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.state)
}

// fail writes err with a status matching its kind
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, models.ErrUnknownType):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidRange),
		errors.Is(err, models.ErrRangeTooLong),
		errors.Is(err, models.ErrImport):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.Log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// AuthMiddleware verifies the JWT token of the operator
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// Login handles operator login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		h.Log.Error("Could not create token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// monthParams reads the :year and :month path parameters
func monthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}
