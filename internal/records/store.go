// Package records holds the session-scoped in-memory patient directory and
// medical record list. Nothing here is durable: the stores live for the
// lifetime of the process, matching the page-session lifecycle of the
// product's dashboard.
package records

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/medtranscribe/internal/models"
)

// Store keeps the medical records created during this session.
// Records are immutable after creation.
type Store struct {
	mu      sync.RWMutex
	records []models.MedicalRecord
	nextID  int
	now     func() time.Time
}

// NewStore creates an empty record store
func NewStore() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// Append creates a transcription record for the given patient and returns it.
// IDs are sequential; the date is the submission date.
func (s *Store) Append(patientID, patientName, transcription, clinicalNote string) models.MedicalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record := models.MedicalRecord{
		ID:            s.nextID,
		PatientID:     patientID,
		PatientName:   patientName,
		Date:          now.Format("2006-01-02"),
		Type:          "Transcription",
		Status:        "completed",
		Transcription: transcription,
		ClinicalNote:  clinicalNote,
		CreatedAt:     now,
	}
	s.nextID++
	s.records = append(s.records, record)
	return record
}

// List returns all records in creation order
func (s *Store) List() []models.MedicalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MedicalRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given ID
func (s *Store) Get(id int) (models.MedicalRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.ID == id {
			return record, true
		}
	}
	return models.MedicalRecord{}, false
}

// Search returns records whose patient name, type or date contains the term,
// case-insensitively
func (s *Store) Search(term string) []models.MedicalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]models.MedicalRecord, len(s.records))
		copy(out, s.records)
		return out
	}

	var out []models.MedicalRecord
	for _, record := range s.records {
		if strings.Contains(strings.ToLower(record.PatientName), term) ||
			strings.Contains(strings.ToLower(record.Type), term) ||
			strings.Contains(record.Date, term) {
			out = append(out, record)
		}
	}
	return out
}

// Len returns the number of records in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Directory is the in-memory patient directory
type Directory struct {
	mu       sync.RWMutex
	patients []models.Patient
	nextID   int
}

// NewDirectory creates a patient directory seeded with the given patients
func NewDirectory(seed []models.Patient) *Directory {
	d := &Directory{nextID: 1}
	for _, p := range seed {
		if p.ID >= d.nextID {
			d.nextID = p.ID + 1
		}
		d.patients = append(d.patients, p)
	}
	return d
}

// Add registers a new patient and assigns an ID
func (d *Directory) Add(patient models.Patient) models.Patient {
	d.mu.Lock()
	defer d.mu.Unlock()
	patient.ID = d.nextID
	d.nextID++
	d.patients = append(d.patients, patient)
	return patient
}

// Get returns a patient by ID
func (d *Directory) Get(id int) (models.Patient, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.patients {
		if p.ID == id {
			return p, true
		}
	}
	return models.Patient{}, false
}

// Lookup resolves a patient selection value as produced by the patient
// selector (numeric ID)
func (d *Directory) Lookup(patientID string) (models.Patient, bool) {
	id, err := strconv.Atoi(patientID)
	if err != nil {
		return models.Patient{}, false
	}
	return d.Get(id)
}

// Search returns up to limit patients whose label contains the term,
// case-insensitively, ordered by ID
func (d *Directory) Search(term string, limit int) []models.Patient {
	d.mu.RLock()
	defer d.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.Patient
	for _, p := range d.patients {
		if term == "" || strings.Contains(strings.ToLower(p.Label()), term) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// List returns all patients ordered by ID
func (d *Directory) List() []models.Patient {
	return d.Search("", 0)
}
