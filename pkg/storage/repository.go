// Package storage persists the scheduler state into named slots of a key-value
// store. Slots that are missing or unreadable fall back to defaults and are
// rewritten immediately.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/pay"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
)

// Slot keys
const (
	KeyShifts        = "turni_calendar_v1"
	KeyShiftTypes    = "turni_shift_types_v1"
	KeyNotes         = "turni_notes_v1"
	KeyHourlyRate    = "turni_hourly_rate_v1"
	KeyContractHours = "turni_contract_hours_v1"
	KeySecondBonus   = "turni_second_bonus_v1"
	KeyThirdBonus    = "turni_third_bonus_v1"
	KeyDeduction     = "turni_deduction_v1"
)

// Repository reads and writes scheduler state and pay parameters
type Repository struct {
	kv          KV
	log         *zap.Logger
	defaultRate float64
}

// NewRepository creates a repository. defaultRate seeds the hourly rate slot when empty.
func NewRepository(kv KV, log *zap.Logger, defaultRate float64) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{kv: kv, log: log, defaultRate: defaultRate}
}

// Load restores the scheduler. Only I/O errors of the underlying store are returned.
func (r *Repository) Load() (*scheduler.Scheduler, error) {
	types, err := r.loadShiftTypes()
	if err != nil {
		return nil, err
	}
	var shifts map[string]string
	if err := r.loadObject(KeyShifts, &shifts); err != nil {
		return nil, err
	}
	var notes map[string]models.Note
	if err := r.loadObject(KeyNotes, &notes); err != nil {
		return nil, err
	}

	s, err := scheduler.NewScheduler(types, shifts, notes)
	if err != nil {
		// catalog decoded but is inconsistent (duplicate ids)
		r.recovered(KeyShiftTypes, err)
		types = scheduler.DefaultShiftTypes()
		if err := r.SaveShiftTypes(types); err != nil {
			return nil, err
		}
		return scheduler.NewScheduler(types, shifts, notes)
	}
	return s, nil
}

func (r *Repository) loadShiftTypes() ([]models.ShiftType, error) {
	raw, ok, err := r.kv.Get(KeyShiftTypes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyShiftTypes, err)
	}
	var types []models.ShiftType
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &types); err != nil {
			r.recovered(KeyShiftTypes, err)
			types = nil
		}
	}
	if len(types) == 0 {
		types = scheduler.DefaultShiftTypes()
		if err := r.SaveShiftTypes(types); err != nil {
			return nil, err
		}
	}
	return types, nil
}

func (r *Repository) loadObject(key string, dst any) error {
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.recovered(key, err)
		return r.kv.Set(key, "{}")
	}
	return nil
}

func (r *Repository) recovered(key string, cause error) {
	err := fmt.Errorf("%w: %s: %v", models.ErrStorageDecode, key, cause)
	r.log.Warn("Restoring defaults for stored slot", zap.String("slot", key), zap.Error(err))
}

// SaveShiftTypes writes the catalog slot
func (r *Repository) SaveShiftTypes(types []models.ShiftType) error {
	if types == nil {
		types = []models.ShiftType{}
	}
	return r.saveJSON(KeyShiftTypes, types)
}

// SaveShifts writes the assignment slot
func (r *Repository) SaveShifts(shifts map[string]string) error {
	return r.saveJSON(KeyShifts, shifts)
}

// SaveNotes writes the notes slot
func (r *Repository) SaveNotes(notes map[string]models.Note) error {
	return r.saveJSON(KeyNotes, notes)
}

// Save writes every slot of the scheduler state. Either all slots are written or
// the store is left as it was.
func (r *Repository) Save(s *scheduler.Scheduler) error {
	writes := make([]slotWrite, 0, 3)
	for _, slot := range []struct {
		key string
		v   any
	}{
		{KeyShiftTypes, s.ShiftTypes()},
		{KeyShifts, s.Shifts()},
		{KeyNotes, s.Notes()},
	} {
		w, err := encodeSlot(slot.key, slot.v)
		if err != nil {
			return err
		}
		writes = append(writes, w)
	}
	return r.writeSlots(writes)
}

func (r *Repository) saveJSON(key string, v any) error {
	w, err := encodeSlot(key, v)
	if err != nil {
		return err
	}
	if err := r.kv.Set(w.key, w.value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

type slotWrite struct {
	key   string
	value string
}

func encodeSlot(key string, v any) (slotWrite, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return slotWrite{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return slotWrite{key: key, value: string(data)}, nil
}

// writeSlots applies writes atomically. Stores implementing Batcher get a single
// batch; on other stores the previous values are restored after a failed write.
func (r *Repository) writeSlots(writes []slotWrite) error {
	if b, ok := r.kv.(Batcher); ok {
		return b.Batch(func(kv KV) error {
			for _, w := range writes {
				if err := kv.Set(w.key, w.value); err != nil {
					return fmt.Errorf("write %s: %w", w.key, err)
				}
			}
			return nil
		})
	}

	prior := make([]slotWrite, len(writes))
	for i, w := range writes {
		v, _, err := r.kv.Get(w.key)
		if err != nil {
			return fmt.Errorf("read %s: %w", w.key, err)
		}
		prior[i] = slotWrite{key: w.key, value: v}
	}
	for i, w := range writes {
		if err := r.kv.Set(w.key, w.value); err != nil {
			r.restore(prior[:i])
			return fmt.Errorf("write %s: %w", w.key, err)
		}
	}
	return nil
}

func (r *Repository) restore(prior []slotWrite) {
	for _, p := range prior {
		if err := r.kv.Set(p.key, p.value); err != nil {
			r.log.Error("Could not restore stored slot", zap.String("slot", p.key), zap.Error(err))
		}
	}
}

// LoadPayParams reads the stored pay parameters. Unreadable values are reset.
func (r *Repository) LoadPayParams() (models.PayParams, error) {
	var p models.PayParams
	fields := []struct {
		key string
		dst *float64
	}{
		{KeyHourlyRate, &p.HourlyRate},
		{KeyContractHours, &p.ContractHours},
		{KeySecondBonus, &p.SecondBonusPct},
		{KeyThirdBonus, &p.ThirdBonusPct},
		{KeyDeduction, &p.DeductionPct},
	}
	for _, f := range fields {
		raw, _, err := r.kv.Get(f.key)
		if err != nil {
			return models.PayParams{}, fmt.Errorf("read %s: %w", f.key, err)
		}
		v, err := pay.ParseAmount(raw)
		if err != nil {
			r.recovered(f.key, err)
			if err := r.kv.Set(f.key, ""); err != nil {
				return models.PayParams{}, err
			}
			v = 0
		}
		*f.dst = v
	}
	if p.HourlyRate == 0 && r.defaultRate > 0 {
		p.HourlyRate = r.defaultRate
		if err := r.kv.Set(KeyHourlyRate, pay.FormatAmount(p.HourlyRate)); err != nil {
			return models.PayParams{}, err
		}
	}
	return p, nil
}

// SavePayParams writes the pay parameter slots together. The manual override is
// not stored.
func (r *Repository) SavePayParams(p models.PayParams) error {
	return r.writeSlots([]slotWrite{
		{KeyHourlyRate, pay.FormatAmount(p.HourlyRate)},
		{KeyContractHours, pay.FormatAmount(p.ContractHours)},
		{KeySecondBonus, pay.FormatAmount(p.SecondBonusPct)},
		{KeyThirdBonus, pay.FormatAmount(p.ThirdBonusPct)},
		{KeyDeduction, pay.FormatAmount(p.DeductionPct)},
	})
}
