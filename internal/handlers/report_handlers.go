package handlers

import (
	"net/http"

	"github.com/example/medtranscribe/internal/models"
	"github.com/example/medtranscribe/internal/reports"
)

// ReportHandler serves the dashboard's analytics reports
type ReportHandler struct {
	generator *reports.Generator
}

// NewReportHandler creates a report handler
func NewReportHandler(generator *reports.Generator) *ReportHandler {
	return &ReportHandler{generator: generator}
}

// ListTemplates returns the available report templates
func (h *ReportHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := models.APIResponse{
		Success: true,
		Data:    reports.Templates(),
	}

	sendJSONResponse(w, response, http.StatusOK)
}

// GenerateReport builds the dataset for one report template
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TemplateID string `json:"templateId"`
		Days       int    `json:"days"`
	}
	if err := decodeJSONBody(r, &req); err != nil {
		sendJSONError(w, "Invalid report request", http.StatusBadRequest)
		return
	}

	report, err := h.generator.Generate(req.TemplateID, req.Days)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := models.APIResponse{
		Success: true,
		Data:    report,
	}

	sendJSONResponse(w, response, http.StatusOK)
}
