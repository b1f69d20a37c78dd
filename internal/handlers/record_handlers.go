package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/medtranscribe/internal/models"
	"github.com/example/medtranscribe/internal/records"
)

// RecordHandler serves the session's medical records
type RecordHandler struct {
	store *records.Store
}

// NewRecordHandler creates a record handler backed by the given store
func NewRecordHandler(store *records.Store) *RecordHandler {
	return &RecordHandler{store: store}
}

// ListRecords returns all records, optionally filtered by a search term
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var result []models.MedicalRecord
	if term := r.URL.Query().Get("search"); term != "" {
		result = h.store.Search(term)
	} else {
		result = h.store.List()
	}

	response := models.APIResponse{
		Success: true,
		Data:    result,
	}

	sendJSONResponse(w, response, http.StatusOK)
}

// GetRecord returns a single record by ID
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendJSONError(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	record, ok := h.store.Get(id)
	if !ok {
		sendJSONError(w, "Record not found", http.StatusNotFound)
		return
	}

	response := models.APIResponse{
		Success: true,
		Data:    record,
	}

	sendJSONResponse(w, response, http.StatusOK)
}

// SaveRecord persists a transcription result the user explicitly saved
// from the review screen
func (h *RecordHandler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		PatientID     string `json:"patientId"`
		PatientName   string `json:"patientName"`
		Transcription string `json:"transcription"`
		ClinicalNote  string `json:"clinicalNote"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		sendJSONError(w, "Invalid record payload", http.StatusBadRequest)
		return
	}

	if payload.PatientID == "" || payload.ClinicalNote == "" {
		sendJSONError(w, "Patient ID and clinical note are required", http.StatusBadRequest)
		return
	}

	record := h.store.Append(payload.PatientID, payload.PatientName, payload.Transcription, payload.ClinicalNote)

	response := models.APIResponse{
		Success: true,
		Message: "Record saved",
		Data:    record,
	}

	sendJSONResponse(w, response, http.StatusOK)
}
