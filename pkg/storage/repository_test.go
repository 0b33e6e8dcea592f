package storage

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadEmptyStoreSeedsDefaults(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewRepository(kv, zap.NewNop(), 12.99)

	s, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultShiftTypes(), s.ShiftTypes())
	assert.Empty(t, s.Shifts())

	raw, ok, _ := kv.Get(KeyShiftTypes)
	require.True(t, ok)
	var stored []models.ShiftType
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, len(scheduler.DefaultShiftTypes()))
}

func TestLoadCorruptSlotsRecover(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	kv := NewMemoryKV()
	_ = kv.Set(KeyShiftTypes, "{not json")
	_ = kv.Set(KeyShifts, "[1,2,3]")
	_ = kv.Set(KeyNotes, `{"2025-01-01":{"title":"ok","text":""}}`)
	repo := NewRepository(kv, zap.New(core), 0)

	s, err := repo.Load()
	require.NoError(t, err)
	assert.Len(t, s.ShiftTypes(), len(scheduler.DefaultShiftTypes()))
	assert.Empty(t, s.Shifts())
	assert.Len(t, s.Notes(), 1)

	raw, _, _ := kv.Get(KeyShifts)
	assert.Equal(t, "{}", raw)
	assert.Equal(t, 2, logs.Len())
}

func TestLoadDuplicateCatalogRecovers(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(KeyShiftTypes, `[{"id":"A"},{"id":"A"}]`)
	s, err := NewRepository(kv, nil, 0).Load()
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultShiftTypes(), s.ShiftTypes())
}

func TestSaveAndReload(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewRepository(kv, nil, 0)
	s, err := repo.Load()
	require.NoError(t, err)

	_, err = s.AddShiftType("Rep", "Reperibilità", "", "#123456", models.TierBase)
	require.NoError(t, err)
	require.NoError(t, s.SetShift("2025-04-01", "REP"))
	require.NoError(t, s.SetNote("2025-04-01", "on call", ""))
	require.NoError(t, repo.Save(s))

	again, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, s.Export(), again.Export())
	assert.Equal(t, s.Order(), again.Order())
}

func TestPayParams(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewRepository(kv, nil, 12.99)

	p, err := repo.LoadPayParams()
	require.NoError(t, err)
	assert.Equal(t, models.PayParams{HourlyRate: 12.99}, p)

	_ = kv.Set(KeyDeduction, "ten")
	_ = kv.Set(KeyThirdBonus, "25,5")
	p, err = repo.LoadPayParams()
	require.NoError(t, err)
	assert.Zero(t, p.DeductionPct)
	assert.Equal(t, 25.5, p.ThirdBonusPct)

	require.NoError(t, repo.SavePayParams(models.PayParams{HourlyRate: 14, ContractHours: 160, ManualHours: 99}))
	p, err = repo.LoadPayParams()
	require.NoError(t, err)
	assert.Equal(t, models.PayParams{HourlyRate: 14, ContractHours: 160}, p)
}

type failingKV struct{ MemoryKV }

func (f *failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }

func TestLoadPropagatesIOErrors(t *testing.T) {
	_, err := NewRepository(&failingKV{}, nil, 0).Load()
	assert.Error(t, err)
}

type flakyKV struct {
	*MemoryKV
	failKey string
}

func (f *flakyKV) Set(key, value string) error {
	if key == f.failKey {
		return errors.New("write failed")
	}
	return f.MemoryKV.Set(key, value)
}

func TestSaveFailureRestoresWrittenSlots(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewRepository(kv, nil, 0)
	s, err := repo.Load()
	require.NoError(t, err)
	require.NoError(t, s.SetShift("2025-11-01", "MATT"))
	require.NoError(t, repo.Save(s))
	typesBefore, _, _ := kv.Get(KeyShiftTypes)

	_, err = s.Import([]byte(`{"shiftTypes":[{"id":"X","short":"X","name":"Extra"}],"shifts":{"2025-11-01":"X"}}`))
	require.NoError(t, err)
	err = NewRepository(&flakyKV{MemoryKV: kv, failKey: KeyShifts}, nil, 0).Save(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyShifts)

	typesAfter, _, _ := kv.Get(KeyShiftTypes)
	assert.Equal(t, typesBefore, typesAfter)

	reloaded, err := repo.Load()
	require.NoError(t, err)
	_, ok := reloaded.Registry().FindByID("MATT")
	assert.True(t, ok)
	id, _ := reloaded.Shift("2025-11-01")
	assert.Equal(t, "MATT", id)
}

func TestSavePayParamsFailureRestoresSlots(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewRepository(kv, nil, 0)
	require.NoError(t, repo.SavePayParams(models.PayParams{HourlyRate: 12, ContractHours: 150}))

	err := NewRepository(&flakyKV{MemoryKV: kv, failKey: KeyDeduction}, nil, 0).
		SavePayParams(models.PayParams{HourlyRate: 20, ContractHours: 100, DeductionPct: 10})
	require.Error(t, err)

	p, err := repo.LoadPayParams()
	require.NoError(t, err)
	assert.Equal(t, models.PayParams{HourlyRate: 12, ContractHours: 150}, p)
}
