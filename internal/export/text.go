// Package export builds downloadable clinical note documents
package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var whitespace = regexp.MustCompile(`\s+`)

// Document is the material of one exported clinical note
type Document struct {
	PatientName   string
	Date          time.Time
	AudioFile     string
	Transcription string
	ClinicalNote  string
}

// Text renders the fixed plain-text export template
func (d Document) Text() string {
	return fmt.Sprintf(
		"MedTranscribe Clinical Note\n\nPatient: %s\nDate: %s\nAudio File: %s\n\nTranscription:\n%s\n\nClinical Note:\n%s",
		d.PatientName,
		localeDate(d.Date),
		d.AudioFile,
		d.Transcription,
		d.ClinicalNote,
	)
}

// Filename derives the download name: sanitized patient name, the export
// date and the audio file stem. Whitespace becomes underscores and the
// original audio extension is stripped.
func (d Document) Filename(ext string) string {
	patient := whitespace.ReplaceAllString(strings.TrimSpace(d.PatientName), "_")
	stem := strings.TrimSuffix(d.AudioFile, filepath.Ext(d.AudioFile))
	return fmt.Sprintf("%s_%s_%s%s", patient, d.Date.Format("2006-01-02"), stem, ext)
}

func localeDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
