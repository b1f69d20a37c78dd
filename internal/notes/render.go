// Package notes renders clinical notes from transcription analysis responses
package notes

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/example/medtranscribe/internal/analysis"
	"github.com/example/medtranscribe/internal/models"
)

// DefaultSummary is used when the response carries no analysis at all
const DefaultSummary = "Clinical analysis completed."

// fencedJSON matches a ```json code block inside a free-text summary.
// Extraction is best effort; a miss or a parse failure degrades the note
// to the raw-text path and is never surfaced.
var fencedJSON = regexp.MustCompile("(?s)```json\n(.*?)\n```")

// diagnosis is one diagnosis entry inside an embedded summary block
type diagnosis struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// summaryPayload is the structured payload some service responses embed as a
// fenced JSON block inside clinical_summary
type summaryPayload struct {
	Entities  []models.MedicalEntity `json:"entities"`
	Diagnoses []diagnosis            `json:"diagnoses"`
	Summary   string                 `json:"summary"`
}

// RenderClinicalNote builds the plain-text clinical note for a service
// response. It is deterministic and never fails: malformed embedded JSON
// falls back to printing the raw summary text.
func RenderClinicalNote(resp *analysis.Response) string {
	ca := resp.ClinicalAnalysis
	if ca == nil {
		if resp.Summary != "" {
			return resp.Summary
		}
		return DefaultSummary
	}

	var b strings.Builder
	b.WriteString("CLINICAL NOTE\n\n")
	fmt.Fprintf(&b, "Patient ID: %s\n", ca.PatientID)
	fmt.Fprintf(&b, "Session Date: %s\n\n", formatSessionDate(ca.SessionDate))

	if resp.Transcription != "" {
		fmt.Fprintf(&b, "Transcription:\n%s\n\n", resp.Transcription)
	}

	if payload, ok := extractSummaryPayload(ca.ClinicalSummary); ok {
		if len(payload.Entities) > 0 {
			b.WriteString("Medical Entities:\n")
			for _, entity := range payload.Entities {
				fmt.Fprintf(&b, "- %s (%s, confidence: %d%%)\n", entity.Text, entity.Category, percent(entity.Confidence))
			}
			b.WriteString("\n")
		}

		if len(payload.Diagnoses) > 0 {
			b.WriteString("Diagnoses:\n")
			for _, diag := range payload.Diagnoses {
				fmt.Fprintf(&b, "- %s (confidence: %d%%)\n", diag.Name, percent(diag.Confidence))
			}
			b.WriteString("\n")
		}

		if payload.Summary != "" {
			fmt.Fprintf(&b, "Clinical Summary:\n%s\n\n", payload.Summary)
		}
	} else {
		fmt.Fprintf(&b, "Analysis:\n%s\n\n", ca.ClinicalSummary)
	}

	fmt.Fprintf(&b, "Confidence Score: %d%%", percent(ca.ConfidenceScore))
	return b.String()
}

// extractSummaryPayload scrapes and parses the fenced JSON block out of a
// clinical summary. The second return is false when no parseable block exists.
func extractSummaryPayload(summary string) (*summaryPayload, bool) {
	match := fencedJSON.FindStringSubmatch(summary)
	if match == nil {
		return nil, false
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(match[1]), &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

// sessionDateLayouts are the formats the service has been seen to use
var sessionDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatSessionDate renders a session date as a short locale-style date.
// Unparseable values pass through unchanged.
func formatSessionDate(value string) string {
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
		}
	}
	return value
}

// percent converts a 0..1 confidence to a whole percentage
func percent(confidence float64) int {
	return int(math.Round(confidence * 100))
}
