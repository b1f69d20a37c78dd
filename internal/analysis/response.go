// Package analysis provides the client for the remote transcription and
// clinical analysis service, and the demo fallback used when it is unreachable.
package analysis

import (
	"encoding/json"
	"strconv"

	"github.com/example/medtranscribe/internal/models"
)

// StatusSuccess is the status value the remote service reports on success
const StatusSuccess = "success"

// FlexID is an identifier that the remote service may encode as either a
// JSON string or a JSON number.
type FlexID string

// UnmarshalJSON accepts both string and numeric encodings
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	// Render integral numbers without a decimal point
	if i, err := n.Int64(); err == nil {
		*f = FlexID(strconv.FormatInt(i, 10))
	} else {
		*f = FlexID(n.String())
	}
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// ClinicalAnalysis is the structured analysis block of a service response
type ClinicalAnalysis struct {
	PatientID       FlexID  `json:"patient_id"`
	SessionDate     string  `json:"session_date"`
	ClinicalSummary string  `json:"clinical_summary"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Response is the JSON body returned by the transcribe_and_analyze endpoint
type Response struct {
	Status           string                 `json:"status"`
	Transcription    string                 `json:"transcription"`
	Summary          string                 `json:"summary"`
	MedicalEntities  []models.MedicalEntity `json:"medical_entities"`
	ClinicalAnalysis *ClinicalAnalysis      `json:"clinical_analysis"`
}
