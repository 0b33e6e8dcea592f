package scheduler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

// DefaultColor is used for shift types created without a color
const DefaultColor = "#ff9999"

// Scheduler owns the catalog, the rotation order, the assignments and the notes of
// one operator. Catalog changes rebuild the order in the same call.
type Scheduler struct {
	registry    *Registry
	order       []string
	assignments *Assignments
	notes       map[string]models.Note
}

// NewScheduler creates a scheduler from stored state
func NewScheduler(types []models.ShiftType, shifts map[string]string, notes map[string]models.Note) (*Scheduler, error) {
	reg, err := NewRegistry(types)
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		registry:    reg,
		assignments: NewAssignments(shifts),
		notes:       make(map[string]models.Note, len(notes)),
	}
	for k, n := range notes {
		s.notes[k] = n
	}
	s.rebuild()
	return s, nil
}

func (s *Scheduler) rebuild() {
	s.order = BuildOrder(s.registry)
}

// Clone returns a deep copy, used to apply a mutation before committing it
func (s *Scheduler) Clone() *Scheduler {
	c := &Scheduler{
		registry:    &Registry{types: s.registry.Types()},
		order:       append([]string(nil), s.order...),
		assignments: NewAssignments(s.assignments.byDate),
		notes:       make(map[string]models.Note, len(s.notes)),
	}
	for k, n := range s.notes {
		c.notes[k] = n
	}
	return c
}

// Registry exposes the catalog for lookups
func (s *Scheduler) Registry() *Registry { return s.registry }

// Order returns the current rotation sequence
func (s *Scheduler) Order() []string { return append([]string(nil), s.order...) }

// ShiftTypes returns the catalog in rotation order
func (s *Scheduler) ShiftTypes() []models.ShiftType { return s.registry.Types() }

// AddShiftType creates a new shift type and rebuilds the rotation order
func (s *Scheduler) AddShiftType(short, name, hours, color string, tier models.PayTier) (models.ShiftType, error) {
	if color == "" {
		color = DefaultColor
	}
	t, err := s.registry.add(short, name, hours, color, tier)
	if err != nil {
		return models.ShiftType{}, err
	}
	s.rebuild()
	return t, nil
}

// RemoveShiftType deletes a shift type. Dates still pointing at it become orphaned
// and are ignored by statistics.
func (s *Scheduler) RemoveShiftType(id string) error {
	if !s.registry.remove(id) {
		return fmt.Errorf("%w: %s", models.ErrUnknownType, id)
	}
	s.rebuild()
	return nil
}

// Shift returns the id assigned to dateKey
func (s *Scheduler) Shift(dateKey string) (string, bool) {
	return s.assignments.Get(dateKey)
}

// Shifts returns a copy of all assignments
func (s *Scheduler) Shifts() map[string]string { return s.assignments.Map() }

// ShiftsInMonth returns the assignments falling in one month
func (s *Scheduler) ShiftsInMonth(year int, month time.Month) map[string]string {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := make(map[string]string)
	for k, v := range s.assignments.byDate {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

// SetShift assigns a known shift type to a date. An empty id clears the date.
func (s *Scheduler) SetShift(dateKey, id string) error {
	if _, err := ParseDateKey(dateKey); err != nil {
		return err
	}
	if id != "" {
		if _, ok := s.registry.FindByID(id); !ok {
			return fmt.Errorf("%w: %s", models.ErrUnknownType, id)
		}
	}
	s.assignments.Set(dateKey, id)
	return nil
}

// ClearShift unassigns a date
func (s *Scheduler) ClearShift(dateKey string) error {
	if _, err := ParseDateKey(dateKey); err != nil {
		return err
	}
	s.assignments.Clear(dateKey)
	return nil
}

// Rotate advances the date to the next shift type in the rotation order
func (s *Scheduler) Rotate(dateKey string) (string, error) {
	if _, err := ParseDateKey(dateKey); err != nil {
		return "", err
	}
	return s.assignments.Rotate(dateKey, s.order), nil
}

// AssignRange assigns id to every date from start to end inclusive and returns the
// effective end. Nothing is written if validation fails.
func (s *Scheduler) AssignRange(start time.Time, end *time.Time, id string) (time.Time, error) {
	if id == "" {
		return time.Time{}, fmt.Errorf("%w: shift type is required", models.ErrValidation)
	}
	if _, ok := s.registry.FindByID(id); !ok {
		return time.Time{}, fmt.Errorf("%w: %s", models.ErrUnknownType, id)
	}
	return s.assignments.AssignRange(start, end, id)
}

// MonthStats aggregates the given month
func (s *Scheduler) MonthStats(year int, month time.Month) models.MonthStatistics {
	return ComputeStats(year, month, s.assignments, s.registry)
}

// Notes returns a copy of all notes
func (s *Scheduler) Notes() map[string]models.Note {
	out := make(map[string]models.Note, len(s.notes))
	for k, n := range s.notes {
		out[k] = n
	}
	return out
}

// Note returns the note of a date
func (s *Scheduler) Note(dateKey string) (models.Note, bool) {
	n, ok := s.notes[dateKey]
	return n, ok
}

// SetNote stores a note. A note with neither title nor text is deleted.
func (s *Scheduler) SetNote(dateKey, title, text string) error {
	if _, err := ParseDateKey(dateKey); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if title == "" && text == "" {
		delete(s.notes, dateKey)
		return nil
	}
	s.notes[dateKey] = models.Note{Title: title, Text: text}
	return nil
}

// DeleteNote removes the note of a date
func (s *Scheduler) DeleteNote(dateKey string) {
	delete(s.notes, dateKey)
}

// MonthReport lists every day of the month with its shift and note
func (s *Scheduler) MonthReport(year int, month time.Month) []models.ReportRow {
	n := DaysIn(year, month)
	rows := make([]models.ReportRow, 0, n)
	for d := 1; d <= n; d++ {
		key := FormatDateKey(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		row := models.ReportRow{Day: d, Date: key}
		if id, ok := s.assignments.Get(key); ok {
			row.ShiftID = id
			if t, ok := s.registry.FindByID(id); ok {
				row.ShiftName = t.Name
				row.TimeRange = t.Hours
				row.Hours = ParseRange(t.Hours)
			}
		}
		if note, ok := s.notes[key]; ok {
			row.NoteTitle = note.Title
		}
		rows = append(rows, row)
	}
	return rows
}

// Export returns the full bulk transfer document
func (s *Scheduler) Export() models.Backup {
	return models.Backup{
		Shifts:     s.assignments.Map(),
		ShiftTypes: s.registry.Types(),
		Notes:      s.Notes(),
	}
}

// DecodeBackup parses and validates a bulk transfer document
func DecodeBackup(data []byte) (models.Backup, error) {
	b, _, err := decodeBackup(data)
	return b, err
}

// decodeBackup also returns the registry built from the document's catalog, nil
// when the document has none
func decodeBackup(data []byte) (models.Backup, *Registry, error) {
	var b models.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return models.Backup{}, nil, fmt.Errorf("%w: %v", models.ErrImport, err)
	}
	var reg *Registry
	if b.ShiftTypes != nil {
		var err error
		if reg, err = NewRegistry(b.ShiftTypes); err != nil {
			return models.Backup{}, nil, fmt.Errorf("%w: %v", models.ErrImport, err)
		}
	}
	for k := range b.Shifts {
		if _, err := ParseDateKey(k); err != nil {
			return models.Backup{}, nil, fmt.Errorf("%w: %v", models.ErrImport, err)
		}
	}
	return b, reg, nil
}

// Import replaces every part of the state present in the document. On error the
// scheduler is left untouched.
func (s *Scheduler) Import(data []byte) (models.Backup, error) {
	b, reg, err := decodeBackup(data)
	if err != nil {
		return models.Backup{}, err
	}
	if reg != nil {
		s.registry = reg
		s.rebuild()
	}
	if b.Shifts != nil {
		s.assignments = NewAssignments(b.Shifts)
	}
	if b.Notes != nil {
		s.notes = make(map[string]models.Note, len(b.Notes))
		for k, n := range b.Notes {
			s.notes[k] = n
		}
	}
	return b, nil
}
