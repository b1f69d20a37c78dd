// Package models provides data structures for the medical transcription application
package models

import (
	"fmt"
	"strings"
	"time"
)

// Patient represents a patient in the directory
type Patient struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"` // YYYY-MM-DD
	Gender    string `json:"gender,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	LastVisit string `json:"lastVisit,omitempty"`
}

// Name returns the patient's full name
func (p Patient) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Label returns the display label used in patient selectors
func (p Patient) Label() string {
	return fmt.Sprintf("%s - DOB: %s", p.Name(), p.DOB)
}

// MedicalEntity is a single entity detected in a transcription
type MedicalEntity struct {
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// MedicalRecord represents a persisted transcription record.
// Records are immutable after creation and live only for the service session.
type MedicalRecord struct {
	ID            int       `json:"id"`
	PatientID     string    `json:"patientId"`
	PatientName   string    `json:"patientName"`
	Date          string    `json:"date"` // YYYY-MM-DD, submission date
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Transcription string    `json:"transcription"`
	ClinicalNote  string    `json:"clinicalNote"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserProfile holds the signed-in clinician's identity
type UserProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
}

// APIResponse is a generic API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
