package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
)

// ListShiftTypes returns the catalog and the rotation order
func (h *Handler) ListShiftTypes(c *gin.Context) {
	var types []models.ShiftType
	var order []string
	h.read(func(s *scheduler.Scheduler) {
		types = s.ShiftTypes()
		order = s.Order()
	})
	c.JSON(http.StatusOK, gin.H{"shift_types": types, "order": order})
}

// AddShiftType creates a shift type from a short label
func (h *Handler) AddShiftType(c *gin.Context) {
	var req struct {
		Short   string         `json:"short" binding:"required"`
		Name    string         `json:"name" binding:"required"`
		Hours   string         `json:"hours"`
		Color   string         `json:"color"`
		PayTier models.PayTier `json:"pay_tier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var created models.ShiftType
	err := h.mutate(func(s *scheduler.Scheduler) error {
		var err error
		created, err = s.AddShiftType(req.Short, req.Name, req.Hours, req.Color, req.PayTier)
		return err
	}, persistShiftTypes)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Info("Shift type added", zap.String("id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// RemoveShiftType deletes a shift type; its past assignments are kept but ignored
func (h *Handler) RemoveShiftType(c *gin.Context) {
	id := c.Param("id")
	err := h.mutate(func(s *scheduler.Scheduler) error {
		return s.RemoveShiftType(id)
	}, persistShiftTypes)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Log.Info("Shift type removed", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Shift type removed"})
}

// ListShifts returns the assignments, optionally limited to ?month=YYYY-MM
func (h *Handler) ListShifts(c *gin.Context) {
	month := c.Query("month")
	var shifts map[string]string
	if month == "" {
		h.read(func(s *scheduler.Scheduler) { shifts = s.Shifts() })
		c.JSON(http.StatusOK, gin.H{"shifts": shifts})
		return
	}

	t, err := time.Parse("2006-01", month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	h.read(func(s *scheduler.Scheduler) { shifts = s.ShiftsInMonth(t.Year(), t.Month()) })
	c.JSON(http.StatusOK, gin.H{"month": month, "shifts": shifts})
}

// SetShift assigns a shift type to one date
func (h *Handler) SetShift(c *gin.Context) {
	var req struct {
		ShiftTypeID string `json:"shift_type_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := c.Param("date")
	err := h.mutate(func(s *scheduler.Scheduler) error {
		return s.SetShift(date, req.ShiftTypeID)
	}, persistShifts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "shift_type_id": req.ShiftTypeID})
}

// ClearShift unassigns one date
func (h *Handler) ClearShift(c *gin.Context) {
	date := c.Param("date")
	err := h.mutate(func(s *scheduler.Scheduler) error {
		return s.ClearShift(date)
	}, persistShifts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "shift_type_id": ""})
}

// RotateShift advances one date to the next shift type
func (h *Handler) RotateShift(c *gin.Context) {
	date := c.Param("date")
	var next string
	err := h.mutate(func(s *scheduler.Scheduler) error {
		var err error
		next, err = s.Rotate(date)
		return err
	}, persistShifts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "shift_type_id": next})
}

// AssignRange assigns a shift type to every date of a closed range. Without an
// end date one calendar week is assigned.
func (h *Handler) AssignRange(c *gin.Context) {
	var req struct {
		Start       string `json:"start" binding:"required"`
		End         string `json:"end"`
		ShiftTypeID string `json:"shift_type_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := scheduler.ParseDateKey(req.Start)
	if err != nil {
		h.fail(c, err)
		return
	}
	var end *time.Time
	if req.End != "" {
		e, err := scheduler.ParseDateKey(req.End)
		if err != nil {
			h.fail(c, err)
			return
		}
		end = &e
	}

	var last time.Time
	err = h.mutate(func(s *scheduler.Scheduler) error {
		var err error
		last, err = s.AssignRange(start, end, req.ShiftTypeID)
		return err
	}, persistShifts)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":         req.Start,
		"end":           scheduler.FormatDateKey(last),
		"shift_type_id": req.ShiftTypeID,
		"days":          int(last.Sub(start).Hours()/24) + 1,
	})
}

// SetNote stores the note of a date; an empty note is removed
func (h *Handler) SetNote(c *gin.Context) {
	var req models.Note
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := c.Param("date")
	err := h.mutate(func(s *scheduler.Scheduler) error {
		return s.SetNote(date, req.Title, req.Text)
	}, persistNotes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "note": req})
}

// DeleteNote removes the note of a date
func (h *Handler) DeleteNote(c *gin.Context) {
	date := c.Param("date")
	err := h.mutate(func(s *scheduler.Scheduler) error {
		s.DeleteNote(date)
		return nil
	}, persistNotes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
