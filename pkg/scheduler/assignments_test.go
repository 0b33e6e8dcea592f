package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRotateCycles(t *testing.T) {
	order := BuildOrder(mustRegistry(t))
	for _, start := range order {
		a := NewAssignments(nil)
		a.Set("2025-01-01", start)
		for i := 0; i < len(order); i++ {
			a.Rotate("2025-01-01", order)
		}
		got, _ := a.Get("2025-01-01")
		assert.Equal(t, start, got, "start %q", start)
	}
}

func TestRotateSteps(t *testing.T) {
	order := []string{"", "A", "B"}
	a := NewAssignments(nil)

	assert.Equal(t, "A", a.Rotate("d", order))
	assert.Equal(t, "B", a.Rotate("d", order))
	assert.Equal(t, "", a.Rotate("d", order))
	_, ok := a.Get("d")
	assert.False(t, ok, "sentinel must clear the entry")
}

func TestRotateUnknownIDRestarts(t *testing.T) {
	a := NewAssignments(map[string]string{"d": "GONE"})
	assert.Equal(t, "A", a.Rotate("d", []string{"", "A", "B"}))
}

func TestAssignRange(t *testing.T) {
	a := NewAssignments(map[string]string{"2025-01-03": "B"})
	end := date(2025, 1, 5)
	last, err := a.AssignRange(date(2025, 1, 1), &end, "A")
	require.NoError(t, err)
	assert.Equal(t, end, last)
	assert.Equal(t, 5, a.Len())
	for _, k := range []string{"2025-01-01", "2025-01-03", "2025-01-05"} {
		id, _ := a.Get(k)
		assert.Equal(t, "A", id, k)
	}
}

func TestAssignRangeDefaultsToWeek(t *testing.T) {
	a := NewAssignments(nil)
	last, err := a.AssignRange(date(2024, 12, 28), nil, "A")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 3), last)
	assert.Equal(t, 7, a.Len())
}

func TestAssignRangeInvalid(t *testing.T) {
	a := NewAssignments(map[string]string{"2025-01-01": "B"})
	end := date(2024, 12, 31)
	_, err := a.AssignRange(date(2025, 1, 1), &end, "A")
	assert.ErrorIs(t, err, models.ErrInvalidRange)
	assert.Equal(t, map[string]string{"2025-01-01": "B"}, a.Map())
}

func TestAssignRangeBounds(t *testing.T) {
	start := date(2025, 1, 1)

	ok := start.AddDate(0, 0, MaxRangeDays)
	a := NewAssignments(nil)
	_, err := a.AssignRange(start, &ok, "A")
	require.NoError(t, err)
	assert.Equal(t, MaxRangeDays+1, a.Len())

	tooLong := start.AddDate(0, 0, MaxRangeDays+1)
	b := NewAssignments(nil)
	_, err = b.AssignRange(start, &tooLong, "A")
	assert.ErrorIs(t, err, models.ErrRangeTooLong)
	assert.Zero(t, b.Len())
}

func TestAssignRangeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := time.Date(2025, 3, 29, 0, 0, 0, 0, loc)
	a := NewAssignments(nil)
	last, err := a.AssignRange(start, nil, "A")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-04", FormatDateKey(last))
	assert.Equal(t, 7, a.Len())
}

func mustRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(DefaultShiftTypes())
	require.NoError(t, err)
	return r
}
