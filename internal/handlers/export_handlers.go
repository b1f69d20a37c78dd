package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/example/medtranscribe/internal/export"
	"github.com/example/medtranscribe/internal/records"
)

// ExportHandler produces downloadable clinical note documents
type ExportHandler struct {
	store *records.Store
	now   func() time.Time
}

// NewExportHandler creates an export handler. Stored records can be exported
// by ID; unsaved results are exported from the request body directly.
func NewExportHandler(store *records.Store) *ExportHandler {
	return &ExportHandler{store: store, now: time.Now}
}

// exportRequest is the payload for exporting a clinical note
type exportRequest struct {
	RecordID      int    `json:"recordId,omitempty"`
	PatientName   string `json:"patientName"`
	AudioFile     string `json:"audioFile"`
	Transcription string `json:"transcription"`
	ClinicalNote  string `json:"clinicalNote"`
	Format        string `json:"format"` // "text" or "word"
}

// HandleExport writes a clinical note document as a file download
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := decodeJSONBody(r, &req); err != nil {
		sendJSONError(w, "Invalid export payload", http.StatusBadRequest)
		return
	}

	doc := export.Document{
		PatientName:   req.PatientName,
		Date:          h.now(),
		AudioFile:     req.AudioFile,
		Transcription: req.Transcription,
		ClinicalNote:  req.ClinicalNote,
	}

	if req.RecordID > 0 {
		record, ok := h.store.Get(req.RecordID)
		if !ok {
			sendJSONError(w, "Record not found", http.StatusNotFound)
			return
		}
		doc.PatientName = record.PatientName
		doc.Transcription = record.Transcription
		doc.ClinicalNote = record.ClinicalNote
	}

	if doc.PatientName == "" {
		sendJSONError(w, "Patient name is required", http.StatusBadRequest)
		return
	}

	switch req.Format {
	case "word", "docx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename(".docx")))
		if err := doc.WriteWord(w); err != nil {
			// Headers are already sent, all we can do is log
			log.Printf("Failed to write Word export: %v", err)
		}
	case "", "text", "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename(".txt")))
		if _, err := w.Write([]byte(doc.Text())); err != nil {
			log.Printf("Failed to write text export: %v", err)
		}
	default:
		sendJSONError(w, fmt.Sprintf("Unknown export format: %s", req.Format), http.StatusBadRequest)
	}
}
