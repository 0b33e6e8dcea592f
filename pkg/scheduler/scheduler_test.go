package scheduler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

func TestSchedulerAssignRangeRejectsUnknownType(t *testing.T) {
	s := newDefaultScheduler(t)
	_, err := s.AssignRange(date(2025, 1, 1), nil, "NOPE")
	assert.ErrorIs(t, err, models.ErrUnknownType)
	_, err = s.AssignRange(date(2025, 1, 1), nil, "")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, s.Shifts())
}

func TestSchedulerRotateValidatesDate(t *testing.T) {
	s := newDefaultScheduler(t)
	_, err := s.Rotate("01/02/2025")
	assert.ErrorIs(t, err, models.ErrValidation)

	id, err := s.Rotate("2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, "MATT", id)
}

func TestSchedulerCloneIsIndependent(t *testing.T) {
	s := newDefaultScheduler(t)
	require.NoError(t, s.SetShift("2025-05-01", "MATT"))

	c := s.Clone()
	require.NoError(t, c.SetShift("2025-05-02", "POME"))
	_, err := c.AddShiftType("X", "Extra", "", "", models.TierNone)
	require.NoError(t, err)
	require.NoError(t, c.SetNote("2025-05-01", "hi", ""))

	assert.Len(t, s.Shifts(), 1)
	assert.Len(t, s.ShiftTypes(), len(DefaultShiftTypes()))
	assert.Empty(t, s.Notes())
}

func TestSchedulerNotes(t *testing.T) {
	s := newDefaultScheduler(t)
	require.NoError(t, s.SetNote("2025-05-01", " Dentist ", "10:30"))
	n, ok := s.Note("2025-05-01")
	require.True(t, ok)
	assert.Equal(t, models.Note{Title: "Dentist", Text: "10:30"}, n)

	require.NoError(t, s.SetNote("2025-05-01", "", "  "))
	_, ok = s.Note("2025-05-01")
	assert.False(t, ok)
}

func TestSchedulerMonthReport(t *testing.T) {
	s := newDefaultScheduler(t)
	require.NoError(t, s.SetShift("2025-02-03", "NOTTE"))
	require.NoError(t, s.SetNote("2025-02-03", "swap", ""))

	rows := s.MonthReport(2025, time.February)
	require.Len(t, rows, 28)
	r := rows[2]
	assert.Equal(t, 3, r.Day)
	assert.Equal(t, "2025-02-03", r.Date)
	assert.Equal(t, "Notte", r.ShiftName)
	assert.Equal(t, "22:00-06:00", r.TimeRange)
	assert.InDelta(t, 8, r.Hours, 1e-9)
	assert.Equal(t, "swap", r.NoteTitle)
	assert.Empty(t, rows[0].ShiftID)
}

func TestImportKeepsMissingKeys(t *testing.T) {
	s := newDefaultScheduler(t)
	require.NoError(t, s.SetShift("2025-06-01", "MATT"))
	require.NoError(t, s.SetNote("2025-06-01", "keep", ""))

	payload := `{"shiftTypes":[{"id":"MATT","short":"M","name":"Morning","hours":"07:00-15:00","color":"#000"},{"id":"EXTRA","short":"E","name":"Extra","hours":"","color":"#111"}]}`
	b, err := s.Import([]byte(payload))
	require.NoError(t, err)
	assert.Nil(t, b.Shifts)

	assert.Equal(t, []string{"", "MATT", "EXTRA"}, s.Order())
	id, _ := s.Shift("2025-06-01")
	assert.Equal(t, "MATT", id)
	_, ok := s.Note("2025-06-01")
	assert.True(t, ok)
	m, _ := s.Registry().FindByID("MATT")
	assert.Equal(t, models.TierBase, m.PayTier)
}

func TestImportMalformedLeavesState(t *testing.T) {
	s := newDefaultScheduler(t)
	require.NoError(t, s.SetShift("2025-06-01", "MATT"))

	for _, payload := range []string{
		`{"shifts":`,
		`[1,2]`,
		`{"shiftTypes":[{"id":"A"},{"id":"A"}]}`,
		`{"shifts":{"June 1":"MATT"}}`,
	} {
		_, err := s.Import([]byte(payload))
		assert.ErrorIs(t, err, models.ErrImport, payload)
	}
	assert.Equal(t, map[string]string{"2025-06-01": "MATT"}, s.Shifts())
	assert.Len(t, s.ShiftTypes(), len(DefaultShiftTypes()))
}

func TestExportRoundTrip(t *testing.T) {
	s := newDefaultScheduler(t)
	require.NoError(t, s.SetShift("2025-06-01", "POME"))
	require.NoError(t, s.SetNote("2025-06-02", "t", "x"))

	data, err := json.Marshal(s.Export())
	require.NoError(t, err)

	other, err := NewScheduler(nil, nil, nil)
	require.NoError(t, err)
	_, err = other.Import(data)
	require.NoError(t, err)
	assert.Equal(t, s.Export(), other.Export())
}

func TestImportUsesDecodedCatalog(t *testing.T) {
	s := newDefaultScheduler(t)

	_, err := s.Import([]byte(`{"shiftTypes":[{"id":"A","payTier":"bonus"}]}`))
	assert.ErrorIs(t, err, models.ErrImport)
	assert.Len(t, s.ShiftTypes(), len(DefaultShiftTypes()))

	_, err = s.Import([]byte(`{"shiftTypes":[]}`))
	require.NoError(t, err)
	assert.Zero(t, s.Registry().Len())
	assert.Equal(t, []string{""}, s.Order())
}
