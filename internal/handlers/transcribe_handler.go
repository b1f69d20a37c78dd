// Package handlers provides the HTTP surface of the transcription service
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/example/medtranscribe/internal/models"
	"github.com/example/medtranscribe/internal/records"
	"github.com/example/medtranscribe/internal/transcription"
)

// maxUploadMemory bounds how much of a multipart upload stays in memory
const maxUploadMemory = 64 << 20

// TranscribeHandler accepts batches of audio files and feeds them through
// the upload pipeline
type TranscribeHandler struct {
	policy    transcription.Policy
	pipeline  *transcription.Pipeline
	directory *records.Directory
}

// NewTranscribeHandler creates a transcription handler
func NewTranscribeHandler(policy transcription.Policy, pipeline *transcription.Pipeline, directory *records.Directory) *TranscribeHandler {
	return &TranscribeHandler{
		policy:    policy,
		pipeline:  pipeline,
		directory: directory,
	}
}

// resultView is the wire shape of one per-file outcome
type resultView struct {
	*transcription.Result
	Status string `json:"status"`
}

// HandleTranscribe processes a multipart batch upload. Every selected file
// yields exactly one entry in the response, in selection order: rejected
// files carry their validation message, everything else carries a
// transcription and clinical note.
func (h *TranscribeHandler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		sendJSONError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	patientID := r.FormValue("patient_id")
	if patientID == "" {
		sendJSONError(w, "Please select a patient before starting transcription.", http.StatusBadRequest)
		return
	}

	patient := transcription.PatientSelection{ID: patientID, Name: r.FormValue("patient_name")}
	if p, ok := h.directory.Lookup(patientID); ok {
		patient.Name = p.Name()
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		sendJSONError(w, "No audio files to process", http.StatusBadRequest)
		return
	}

	// One response slot per selected file, in selection order. Rejected
	// files get their slot filled immediately and never reach the batch.
	results := make([]*transcription.Result, len(headers))
	batch := transcription.NewBatch()
	accepted := make([]int, 0, len(headers))

	for i, header := range headers {
		contentType := header.Header.Get("Content-Type")

		if err := h.policy.Validate(header.Filename, header.Size, contentType); err != nil {
			results[i] = transcription.RejectedResult(header.Filename, err.Error())
			continue
		}

		file, err := header.Open()
		if err != nil {
			sendJSONError(w, fmt.Sprintf("Failed to read %s", header.Filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			sendJSONError(w, fmt.Sprintf("Failed to read %s", header.Filename), http.StatusBadRequest)
			return
		}

		candidate := transcription.Candidate{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: contentType,
			Data:        data,
		}

		before := batch.Len()
		batch.Add(h.policy, candidate)
		if batch.Len() == before {
			// Duplicate selection within the same upload, echo the first
			// file's slot position so the count still lines up
			results[i] = transcription.RejectedResult(header.Filename, fmt.Sprintf("File %q is already in this batch.", header.Filename))
			continue
		}
		accepted = append(accepted, i)
	}

	if batch.Len() > 0 {
		processed, err := h.pipeline.Run(r.Context(), batch, patient)
		if err != nil {
			log.Printf("Pipeline run failed: %v", err)
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		for j, result := range processed {
			results[accepted[j]] = result
		}
	}

	views := make([]resultView, len(results))
	processedCount := 0
	for i, result := range results {
		views[i] = resultView{Result: result, Status: result.Status()}
		if result.Success {
			processedCount++
		}
	}

	response := models.APIResponse{
		Success: true,
		Message: fmt.Sprintf("Processed %d of %d files", processedCount, len(results)),
		Data: map[string]interface{}{
			"patientId":   patient.ID,
			"patientName": patient.Name,
			"results":     views,
		},
	}

	sendJSONResponse(w, response, http.StatusOK)
}
