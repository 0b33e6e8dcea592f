package scheduler

import (
	"time"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ShiftMonth moves (year, month) by delta months, wrapping the year
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ComputeStats counts days and hours per shift type for one month. Days whose id is
// not in the registry are skipped. Zero-hour types still count their days.
func ComputeStats(year int, month time.Month, a *Assignments, r *Registry) models.MonthStatistics {
	stats := models.MonthStatistics{
		Year:    year,
		Month:   month,
		PerType: make(map[string]models.TypeStats),
	}

	for d := 1; d <= DaysIn(year, month); d++ {
		key := FormatDateKey(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		id, ok := a.Get(key)
		if !ok {
			continue
		}
		t, ok := r.FindByID(id)
		if !ok {
			continue
		}

		h := ParseRange(t.Hours)
		ts, seen := stats.PerType[id]
		if !seen {
			ts = models.TypeStats{ID: id, Label: label(t), Color: t.Color, Tier: t.PayTier}
		}
		ts.Days++
		ts.Hours += h
		stats.PerType[id] = ts
		stats.TotalHours += h
	}

	for _, id := range r.IDs() {
		if _, ok := stats.PerType[id]; ok {
			stats.Order = append(stats.Order, id)
		}
	}
	return stats
}

func label(t models.ShiftType) string {
	if t.Short != "" {
		return t.Short
	}
	return t.Name
}
