package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
)

// ExportBackup returns the full state as a downloadable JSON document
func (h *Handler) ExportBackup(c *gin.Context) {
	var b models.Backup
	h.read(func(s *scheduler.Scheduler) { b = s.Export() })
	c.Header("Content-Disposition", `attachment; filename="turni-backup.json"`)
	c.IndentedJSON(http.StatusOK, b)
}

// ImportBackup replaces every part of the state present in the uploaded document
func (h *Handler) ImportBackup(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	var imported models.Backup
	err = h.mutate(func(s *scheduler.Scheduler) error {
		var err error
		imported, err = s.Import(data)
		return err
	}, persistAll)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Info("Backup imported",
		zap.Bool("shifts", imported.Shifts != nil),
		zap.Bool("shift_types", imported.ShiftTypes != nil),
		zap.Bool("notes", imported.Notes != nil))
	c.JSON(http.StatusOK, gin.H{"message": "Backup imported", "stats": backupStats(imported)})
}

// ValidateBackup checks a document without importing it
func (h *Handler) ValidateBackup(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "could not read body"})
		return
	}

	b, err := scheduler.DecodeBackup(data)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	// Assignments are checked against the catalog they would end up with
	known := make(map[string]bool)
	if b.ShiftTypes != nil {
		for _, t := range b.ShiftTypes {
			known[t.ID] = true
		}
	} else {
		h.read(func(s *scheduler.Scheduler) {
			for _, id := range s.Registry().IDs() {
				known[id] = true
			}
		})
	}
	orphaned := 0
	for _, id := range b.Shifts {
		if id != "" && !known[id] {
			orphaned++
		}
	}

	stats := backupStats(b)
	stats["orphaned_shifts"] = orphaned
	c.JSON(http.StatusOK, gin.H{"valid": true, "stats": stats})
}

func backupStats(b models.Backup) gin.H {
	return gin.H{
		"shift_count":      len(b.Shifts),
		"shift_type_count": len(b.ShiftTypes),
		"note_count":       len(b.Notes),
	}
}
