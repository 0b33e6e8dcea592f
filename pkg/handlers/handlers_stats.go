package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/pay"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/report"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MonthStats returns day counts and hours per shift type for a month
func (h *Handler) MonthStats(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}
	var stats models.MonthStatistics
	h.read(func(s *scheduler.Scheduler) { stats = s.MonthStats(year, month) })

	c.JSON(http.StatusOK, gin.H{
		"year":        year,
		"month":       int(month),
		"entries":     stats.Entries(),
		"total_hours": stats.TotalHours,
	})
}

// MonthReport streams the month sheet as an XLSX file
func (h *Handler) MonthReport(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}
	var rows []models.ReportRow
	var stats models.MonthStatistics
	h.read(func(s *scheduler.Scheduler) {
		rows = s.MonthReport(year, month)
		stats = s.MonthStats(year, month)
	})

	var buf bytes.Buffer
	if err := report.WriteMonthXLSX(&buf, rows, stats); err != nil {
		h.fail(c, err)
		return
	}
	name := fmt.Sprintf("turni-%s.xlsx", report.SheetName(year, int(month)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

type payParamsRequest struct {
	HourlyRate     float64 `json:"hourly_rate" binding:"required,gt=0"`
	ContractHours  float64 `json:"contract_hours" binding:"gte=0"`
	SecondBonusPct float64 `json:"second_bonus_pct" binding:"gte=0"`
	ThirdBonusPct  float64 `json:"third_bonus_pct" binding:"gte=0"`
	DeductionPct   float64 `json:"deduction_pct" binding:"gte=0,lte=100"`
}

// GetPayParams returns the stored pay parameters
func (h *Handler) GetPayParams(c *gin.Context) {
	h.mu.Lock()
	p := h.params
	h.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

// UpdatePayParams stores the pay parameters
func (h *Handler) UpdatePayParams(c *gin.Context) {
	var req payParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := models.PayParams{
		HourlyRate:     req.HourlyRate,
		ContractHours:  req.ContractHours,
		SecondBonusPct: req.SecondBonusPct,
		ThirdBonusPct:  req.ThirdBonusPct,
		DeductionPct:   req.DeductionPct,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Repo.SavePayParams(p); err != nil {
		h.fail(c, err)
		return
	}
	h.params = p
	c.JSON(http.StatusOK, p)
}

// EstimatePay computes the pay estimate of a month. Fields present in the body
// override the stored parameters for this request only.
func (h *Handler) EstimatePay(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}
	var req struct {
		HourlyRate     *float64 `json:"hourly_rate"`
		ManualHours    *float64 `json:"manual_hours"`
		ContractHours  *float64 `json:"contract_hours"`
		SecondBonusPct *float64 `json:"second_bonus_pct"`
		ThirdBonusPct  *float64 `json:"third_bonus_pct"`
		DeductionPct   *float64 `json:"deduction_pct"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var p models.PayParams
	var stats models.MonthStatistics
	h.read(func(s *scheduler.Scheduler) {
		p = h.params
		stats = s.MonthStats(year, month)
	})
	overlay(&p.HourlyRate, req.HourlyRate)
	overlay(&p.ManualHours, req.ManualHours)
	overlay(&p.ContractHours, req.ContractHours)
	overlay(&p.SecondBonusPct, req.SecondBonusPct)
	overlay(&p.ThirdBonusPct, req.ThirdBonusPct)
	overlay(&p.DeductionPct, req.DeductionPct)

	est, err := pay.Estimate(p, stats)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Log.Debug("Pay estimated",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.String("basis", string(est.Basis)))
	c.JSON(http.StatusOK, est)
}

func overlay(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
