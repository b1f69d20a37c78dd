package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/medtranscribe/internal/models"
	"github.com/example/medtranscribe/internal/records"
)

// PatientHandler serves the patient directory
type PatientHandler struct {
	directory *records.Directory
}

// NewPatientHandler creates a patient handler backed by the given directory
func NewPatientHandler(directory *records.Directory) *PatientHandler {
	return &PatientHandler{directory: directory}
}

// patientView is the wire shape of a patient selector entry
type patientView struct {
	models.Patient
	Name  string `json:"name"`
	Label string `json:"label"`
}

func newPatientView(p models.Patient) patientView {
	return patientView{Patient: p, Name: p.Name(), Label: p.Label()}
}

// ListPatients returns patients, optionally filtered for the selector
// typeahead via ?search= and capped via ?limit=
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	patients := h.directory.Search(r.URL.Query().Get("search"), limit)
	views := make([]patientView, len(patients))
	for i, p := range patients {
		views[i] = newPatientView(p)
	}

	response := models.APIResponse{
		Success: true,
		Data:    views,
	}

	sendJSONResponse(w, response, http.StatusOK)
}

// GetPatient returns a single patient by ID
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendJSONError(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	patient, ok := h.directory.Get(id)
	if !ok {
		sendJSONError(w, "Patient not found", http.StatusNotFound)
		return
	}

	response := models.APIResponse{
		Success: true,
		Data:    newPatientView(patient),
	}

	sendJSONResponse(w, response, http.StatusOK)
}

// AddPatient registers a new patient in the directory
func (h *PatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var patient models.Patient
	if err := decodeJSONBody(r, &patient); err != nil {
		sendJSONError(w, "Invalid patient payload", http.StatusBadRequest)
		return
	}

	if patient.FirstName == "" || patient.LastName == "" || patient.DOB == "" {
		sendJSONError(w, "First name, last name and date of birth are required", http.StatusBadRequest)
		return
	}

	added := h.directory.Add(patient)

	response := models.APIResponse{
		Success: true,
		Message: "Patient added",
		Data:    newPatientView(added),
	}

	sendJSONResponse(w, response, http.StatusOK)
}
