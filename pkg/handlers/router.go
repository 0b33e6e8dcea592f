package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint
const Version = "3.0.0"

// NewRouter registers every route on a fresh engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Turni API",
			"version": Version,
		})
	})

	r.POST("/admin/login", h.Login)

	api := r.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		api.GET("/shift-types", h.ListShiftTypes)
		api.POST("/shift-types", h.AddShiftType)
		api.DELETE("/shift-types/:id", h.RemoveShiftType)

		api.GET("/shifts", h.ListShifts)
		api.PUT("/shifts/:date", h.SetShift)
		api.DELETE("/shifts/:date", h.ClearShift)
		api.POST("/shifts/:date/rotate", h.RotateShift)
		api.POST("/shift-ranges", h.AssignRange)

		api.PUT("/notes/:date", h.SetNote)
		api.DELETE("/notes/:date", h.DeleteNote)

		api.GET("/stats/:year/:month", h.MonthStats)
		api.GET("/report/:year/:month", h.MonthReport)
		api.GET("/pay/params", h.GetPayParams)
		api.PUT("/pay/params", h.UpdatePayParams)
		api.POST("/pay/:year/:month", h.EstimatePay)

		api.GET("/backup", h.ExportBackup)
		api.POST("/backup", h.ImportBackup)
		api.POST("/backup/validate", h.ValidateBackup)
	}

	return r
}
