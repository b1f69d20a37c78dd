package transcription

import (
	"github.com/example/medtranscribe/internal/analysis"
	"github.com/example/medtranscribe/internal/models"
)

// Outcome is the tagged variant for a candidate's final state. Keeping the
// "never hard-fail a file" masking as an explicit variant keeps it auditable
// instead of implicit in caught errors.
type Outcome int

const (
	// OutcomeSuccess means the remote service analyzed the file
	OutcomeSuccess Outcome = iota
	// OutcomeDemoFallback means the remote call failed and demo content was
	// substituted in its place
	OutcomeDemoFallback
	// OutcomeRejected means the file never entered a run: the validation
	// policy turned it away
	OutcomeRejected
)

// String returns the display name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "processed"
	case OutcomeDemoFallback:
		return "demo"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the outcome of one candidate's trip through the pipeline
type Result struct {
	Filename        string                 `json:"filename"`
	Outcome         Outcome                `json:"-"`
	Success         bool                   `json:"success"`
	IsDemo          bool                   `json:"isDemo"`
	Transcription   string                 `json:"transcription"`
	ClinicalNote    string                 `json:"clinicalNote"`
	MedicalEntities []models.MedicalEntity `json:"medicalEntities,omitempty"`
	Error           string                 `json:"error,omitempty"`

	// RecordID is set when the result was persisted to the record store
	RecordID int `json:"recordId,omitempty"`
	// ArchiveID is set when the original audio was archived
	ArchiveID string `json:"archiveId,omitempty"`

	// Response is the raw service response on the success path
	Response *analysis.Response `json:"-"`
}

// Status returns the display status shown next to a result
func (r *Result) Status() string {
	if !r.Success {
		return "Error"
	}
	if r.IsDemo {
		return "Demo Mode"
	}
	return "Processed"
}
