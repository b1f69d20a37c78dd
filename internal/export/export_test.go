package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDoc = Document{
	PatientName:   "Sarah Johnson",
	Date:          time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC),
	AudioFile:     "morning visit.mp3",
	Transcription: "Doctor: How is the new medication?",
	ClinicalNote:  "CLINICAL NOTE\n\nPatient tolerating medication well.",
}

func TestTextExport(t *testing.T) {
	text := testDoc.Text()

	assert.Contains(t, text, "MedTranscribe Clinical Note")
	assert.Contains(t, text, "Patient: Sarah Johnson")
	assert.Contains(t, text, "Date: 3/5/2024")
	assert.Contains(t, text, "Audio File: morning visit.mp3")
	assert.Contains(t, text, "Transcription:\nDoctor: How is the new medication?")
	assert.Contains(t, text, "Clinical Note:\nCLINICAL NOTE")
}

func TestFilenameSanitization(t *testing.T) {
	assert.Equal(t, "Sarah_Johnson_2024-03-05_morning visit.txt", testDoc.Filename(".txt"))

	doc := testDoc
	doc.PatientName = "  Mary   Jane\tSmith "
	doc.AudioFile = "checkup.recording.m4a"
	assert.Equal(t, "Mary_Jane_Smith_2024-03-05_checkup.recording.docx", doc.Filename(".docx"))
}

func TestWordExportProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testDoc.WriteWord(&buf))

	// A docx is a zip archive; check the magic bytes
	require.Greater(t, buf.Len(), 4)
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
