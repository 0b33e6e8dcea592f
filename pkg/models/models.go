package models

import "time"

// PayTier is the pay-differential bucket a shift type belongs to
type PayTier string

const (
	TierNone   PayTier = ""
	TierBase   PayTier = "base"
	TierSecond PayTier = "second"
	TierThird  PayTier = "third"
	TierUnpaid PayTier = "unpaid"
)

// Valid reports whether t is one of the known tiers (including TierNone)
func (t PayTier) Valid() bool {
	switch t {
	case TierNone, TierBase, TierSecond, TierThird, TierUnpaid:
		return true
	}
	return false
}

// ShiftType is one category of workday. Field names follow the stored catalog format.
type ShiftType struct {
	ID      string  `json:"id"`
	Short   string  `json:"short"`
	Name    string  `json:"name"`
	Hours   string  `json:"hours"`
	Color   string  `json:"color"`
	PayTier PayTier `json:"payTier,omitempty"`
}

// Note is a free-form annotation attached to a date
type Note struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Backup is the bulk transfer document. A nil field means the key was absent
// (or null) on import.
type Backup struct {
	Shifts     map[string]string `json:"shifts"`
	ShiftTypes []ShiftType       `json:"shiftTypes"`
	Notes      map[string]Note   `json:"notes"`
}

// TypeStats aggregates one shift type over a month
type TypeStats struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	Tier  PayTier `json:"tier"`
	Days  int     `json:"days"`
	Hours float64 `json:"hours"`
}

// MonthStatistics is derived on demand and never persisted
type MonthStatistics struct {
	Year       int                  `json:"year"`
	Month      time.Month           `json:"month"`
	PerType    map[string]TypeStats `json:"per_type"`
	Order      []string             `json:"order"` // ids of PerType in catalog order
	TotalHours float64              `json:"total_hours"`
}

// Entries returns the per-type stats in catalog order
func (m MonthStatistics) Entries() []TypeStats {
	out := make([]TypeStats, 0, len(m.Order))
	for _, id := range m.Order {
		out = append(out, m.PerType[id])
	}
	return out
}

// PayParams are the operator-supplied inputs of a pay estimate
type PayParams struct {
	HourlyRate     float64 `json:"hourly_rate"`
	ManualHours    float64 `json:"manual_hours"`
	ContractHours  float64 `json:"contract_hours"`
	SecondBonusPct float64 `json:"second_bonus_pct"`
	ThirdBonusPct  float64 `json:"third_bonus_pct"`
	DeductionPct   float64 `json:"deduction_pct"`
}

// Basis names which hour figure the reference amount was computed from
type Basis string

const (
	BasisManual   Basis = "manual"
	BasisContract Basis = "contract"
	BasisCalendar Basis = "calendar"
)

// PayEstimate is the breakdown produced by the pay estimator
type PayEstimate struct {
	BaseHours     float64 `json:"base_hours"`
	SecondHours   float64 `json:"second_hours"`
	ThirdHours    float64 `json:"third_hours"`
	CalendarHours float64 `json:"calendar_hours"`

	BaseGross     float64 `json:"base_gross"`
	SecondGross   float64 `json:"second_gross"`
	ThirdGross    float64 `json:"third_gross"`
	CalendarGross float64 `json:"calendar_gross"`
	CalendarNet   float64 `json:"calendar_net"`

	Basis          Basis   `json:"basis"`
	ReferenceHours float64 `json:"reference_hours"`
	ReferenceGross float64 `json:"reference_gross"`
	ReferenceNet   float64 `json:"reference_net"`

	Difference float64 `json:"difference"`
}

// ReportRow is one day of the printable month sheet
type ReportRow struct {
	Day       int     `json:"day"`
	Date      string  `json:"date"`
	ShiftID   string  `json:"shift_id"`
	ShiftName string  `json:"shift_name"`
	TimeRange string  `json:"time_range"`
	Hours     float64 `json:"hours"`
	NoteTitle string  `json:"note_title"`
}
