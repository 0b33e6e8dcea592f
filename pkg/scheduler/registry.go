package scheduler

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

// fallbackMarker prefixes generated ids for labels with no usable characters
const fallbackMarker = "T"

// legacyTiers classifies catalogs stored before shift types carried a pay tier
var legacyTiers = map[string]models.PayTier{
	"MATT":  models.TierBase,
	"FER":   models.TierBase,
	"MUT":   models.TierBase,
	"PAR":   models.TierBase,
	"PS":    models.TierBase,
	"POME":  models.TierSecond,
	"NOTTE": models.TierThird,
	"LIB":   models.TierUnpaid,
}

// DefaultShiftTypes returns the starter catalog
func DefaultShiftTypes() []models.ShiftType {
	return []models.ShiftType{
		{ID: "MATT", Short: "Matt", Name: "Mattina", Hours: "06:00-14:00", Color: "#ff8f8f", PayTier: models.TierBase},
		{ID: "POME", Short: "Pome", Name: "Pomeriggio", Hours: "14:00-22:00", Color: "#ffb36b", PayTier: models.TierSecond},
		{ID: "NOTTE", Short: "Notte", Name: "Notte", Hours: "22:00-06:00", Color: "#7f8cff", PayTier: models.TierThird},
		{ID: "LIB", Short: "Libero", Name: "Riposo", Hours: "", Color: "#7fd49b", PayTier: models.TierUnpaid},
		{ID: "FER", Short: "Ferie", Name: "Ferie", Hours: "", Color: "#d78cff", PayTier: models.TierBase},
		{ID: "MUT", Short: "Mutua", Name: "Mutua", Hours: "", Color: "#8fd1ff", PayTier: models.TierBase},
		{ID: "PAR", Short: "PAR", Name: "PAR", Hours: "", Color: "#aecbff", PayTier: models.TierBase},
		{ID: "PS", Short: "P.S.", Name: "P.S.", Hours: "", Color: "#b6f5c2", PayTier: models.TierBase},
	}
}

// DeriveID uppercases a short label and drops everything that is not A-Z or 0-9
func DeriveID(short string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(short) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func randomID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fallbackMarker + strings.ToUpper(hex[:4])
}

// Registry is the ordered catalog of shift types. Mutations go through Scheduler so
// the rotation order is always rebuilt with them.
type Registry struct {
	types []models.ShiftType
}

// NewRegistry builds a registry from stored types, filling in legacy pay tiers.
// Duplicate or empty ids are rejected.
func NewRegistry(types []models.ShiftType) (*Registry, error) {
	r := &Registry{types: make([]models.ShiftType, 0, len(types))}
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: shift type without id", models.ErrValidation)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateID, t.ID)
		}
		if !t.PayTier.Valid() {
			return nil, fmt.Errorf("%w: pay tier %q", models.ErrValidation, t.PayTier)
		}
		seen[t.ID] = true
		if t.PayTier == models.TierNone {
			t.PayTier = legacyTiers[t.ID]
		}
		r.types = append(r.types, t)
	}
	return r, nil
}

// FindByID returns the shift type with the given id
func (r *Registry) FindByID(id string) (models.ShiftType, bool) {
	for _, t := range r.types {
		if t.ID == id {
			return t, true
		}
	}
	return models.ShiftType{}, false
}

// Types returns a copy of the catalog in insertion order
func (r *Registry) Types() []models.ShiftType {
	return append([]models.ShiftType(nil), r.types...)
}

// IDs returns the ids in insertion order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.types))
	for i, t := range r.types {
		ids[i] = t.ID
	}
	return ids
}

// Len returns the number of shift types
func (r *Registry) Len() int { return len(r.types) }

func (r *Registry) add(short, name, hours, color string, tier models.PayTier) (models.ShiftType, error) {
	short = strings.TrimSpace(short)
	name = strings.TrimSpace(name)
	if short == "" || name == "" {
		return models.ShiftType{}, fmt.Errorf("%w: short label and name are required", models.ErrValidation)
	}
	if !tier.Valid() {
		return models.ShiftType{}, fmt.Errorf("%w: pay tier %q", models.ErrValidation, tier)
	}

	id := DeriveID(short)
	if id == "" {
		id = randomID()
		for _, taken := r.FindByID(id); taken; _, taken = r.FindByID(id) {
			id = randomID()
		}
	}
	if _, exists := r.FindByID(id); exists {
		return models.ShiftType{}, fmt.Errorf("%w: %s", models.ErrDuplicateID, id)
	}

	t := models.ShiftType{
		ID:      id,
		Short:   short,
		Name:    name,
		Hours:   strings.TrimSpace(hours),
		Color:   color,
		PayTier: tier,
	}
	r.types = append(r.types, t)
	return t, nil
}

func (r *Registry) remove(id string) bool {
	for i, t := range r.types {
		if t.ID == id {
			r.types = append(r.types[:i:i], r.types[i+1:]...)
			return true
		}
	}
	return false
}

// BuildOrder returns the rotation sequence: the unassigned sentinel followed by
// every catalog id in insertion order.
func BuildOrder(r *Registry) []string {
	return append([]string{""}, r.IDs()...)
}
