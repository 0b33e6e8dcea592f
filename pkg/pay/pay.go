// Package pay derives gross and net earnings from a month of shifts.
package pay

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

// Estimate computes the calendar-based pay of a month and compares it with a
// reference amount. The reference hours are, in order of preference, the manual
// override, the contractual hours and the calendar total.
func Estimate(p models.PayParams, stats models.MonthStatistics) (models.PayEstimate, error) {
	if p.HourlyRate <= 0 || math.IsNaN(p.HourlyRate) || math.IsInf(p.HourlyRate, 0) {
		return models.PayEstimate{}, fmt.Errorf("%w: hourly rate must be greater than zero", models.ErrValidation)
	}

	var est models.PayEstimate
	for _, id := range stats.Order {
		ts := stats.PerType[id]
		switch ts.Tier {
		case models.TierBase:
			est.BaseHours += ts.Hours
		case models.TierSecond:
			est.SecondHours += ts.Hours
		case models.TierThird:
			est.ThirdHours += ts.Hours
		}
	}
	est.CalendarHours = stats.TotalHours

	rate := p.HourlyRate
	est.BaseGross = est.BaseHours * rate
	est.SecondGross = est.SecondHours * rate * (1 + p.SecondBonusPct/100)
	est.ThirdGross = est.ThirdHours * rate * (1 + p.ThirdBonusPct/100)
	est.CalendarGross = est.BaseGross + est.SecondGross + est.ThirdGross

	switch {
	case p.ManualHours > 0:
		est.Basis, est.ReferenceHours = models.BasisManual, p.ManualHours
	case p.ContractHours > 0:
		est.Basis, est.ReferenceHours = models.BasisContract, p.ContractHours
	default:
		est.Basis, est.ReferenceHours = models.BasisCalendar, stats.TotalHours
	}

	keep := 1 - p.DeductionPct/100
	est.ReferenceGross = est.ReferenceHours * rate
	est.ReferenceNet = est.ReferenceGross * keep
	est.CalendarNet = est.CalendarGross * keep
	est.Difference = est.CalendarNet - est.ReferenceNet

	return round(est), nil
}

func round(e models.PayEstimate) models.PayEstimate {
	for _, f := range []*float64{
		&e.BaseHours, &e.SecondHours, &e.ThirdHours, &e.CalendarHours,
		&e.BaseGross, &e.SecondGross, &e.ThirdGross, &e.CalendarGross, &e.CalendarNet,
		&e.ReferenceHours, &e.ReferenceGross, &e.ReferenceNet, &e.Difference,
	} {
		*f = Round2(*f)
	}
	return e
}

// Round2 rounds to two decimals, half away from zero
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// ParseAmount reads an operator-entered number, accepting a comma as decimal
// separator. Empty input is 0.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", models.ErrValidation, s)
	}
	return v, nil
}

// FormatAmount renders a stored scalar; zero is stored as the empty string
func FormatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
