package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/medtranscribe/internal/records"
	"github.com/example/medtranscribe/internal/reports"
)

func TestListRecords(t *testing.T) {
	store := records.NewStore()
	store.Append("1", "John Doe", "transcription", "note")
	store.Append("2", "Sarah Johnson", "transcription", "note")
	handler := NewRecordHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	rec := httptest.NewRecorder()
	handler.ListRecords(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	assert.Len(t, resp.Data.([]interface{}), 2)
}

func TestListRecordsWithSearch(t *testing.T) {
	store := records.NewStore()
	store.Append("1", "John Doe", "transcription", "note")
	store.Append("2", "Sarah Johnson", "transcription", "note")
	handler := NewRecordHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/records?search=sarah", nil)
	rec := httptest.NewRecorder()
	handler.ListRecords(rec, req)

	resp := decodeResponse(t, rec)
	assert.Len(t, resp.Data.([]interface{}), 1)
}

func TestGetRecordByID(t *testing.T) {
	store := records.NewStore()
	created := store.Append("1", "John Doe", "transcription", "note")
	handler := NewRecordHandler(store)

	router := mux.NewRouter()
	router.HandleFunc("/api/records/{id}", handler.GetRecord)

	req := httptest.NewRequest(http.MethodGet, "/api/records/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	record := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(created.ID), record["id"])
	assert.Equal(t, "John Doe", record["patientName"])

	req = httptest.NewRequest(http.MethodGet, "/api/records/99", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveRecord(t *testing.T) {
	store := records.NewStore()
	handler := NewRecordHandler(store)

	payload := `{"patientId":"3","patientName":"Mike Wilson","transcription":"t","clinicalNote":"n"}`
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.SaveRecord(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.Len())

	// Missing clinical note is rejected
	req = httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{"patientId":"3"}`))
	rec = httptest.NewRecorder()
	handler.SaveRecord(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPatients(t *testing.T) {
	handler := NewPatientHandler(records.NewDirectory(records.SeedPatients()))

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	handler.ListPatients(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	patients := resp.Data.([]interface{})
	require.NotEmpty(t, patients)

	first := patients[0].(map[string]interface{})
	assert.Equal(t, "John Doe", first["name"])
	assert.Equal(t, "John Doe - DOB: 1985-03-15", first["label"])
}

func TestListPatientsSearchAndLimit(t *testing.T) {
	handler := NewPatientHandler(records.NewDirectory(records.SeedPatients()))

	req := httptest.NewRequest(http.MethodGet, "/api/patients?search=wilson", nil)
	rec := httptest.NewRecorder()
	handler.ListPatients(rec, req)
	resp := decodeResponse(t, rec)
	assert.Len(t, resp.Data.([]interface{}), 1)

	req = httptest.NewRequest(http.MethodGet, "/api/patients?limit=2", nil)
	rec = httptest.NewRecorder()
	handler.ListPatients(rec, req)
	resp = decodeResponse(t, rec)
	assert.Len(t, resp.Data.([]interface{}), 2)
}

func TestAddPatientValidation(t *testing.T) {
	handler := NewPatientHandler(records.NewDirectory(nil))

	payload := `{"firstName":"Jane","lastName":"Roe","dob":"1992-06-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.AddPatient(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{"firstName":"Jane"}`))
	rec = httptest.NewRecorder()
	handler.AddPatient(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportText(t *testing.T) {
	handler := NewExportHandler(records.NewStore())

	payload := map[string]string{
		"patientName":   "Sarah Johnson",
		"audioFile":     "visit.mp3",
		"transcription": "Doctor: hello",
		"clinicalNote":  "CLINICAL NOTE",
		"format":        "text",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleExport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Sarah_Johnson_")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "_visit.txt")
	assert.Contains(t, rec.Body.String(), "MedTranscribe Clinical Note")
	assert.Contains(t, rec.Body.String(), "Patient: Sarah Johnson")
}

func TestExportStoredRecord(t *testing.T) {
	store := records.NewStore()
	record := store.Append("2", "Sarah Johnson", "transcription text", "note text")
	handler := NewExportHandler(store)

	payload := map[string]interface{}{"recordId": record.ID, "audioFile": "visit.mp3", "format": "text"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleExport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "transcription text")
	assert.Contains(t, rec.Body.String(), "note text")
}

func TestExportWord(t *testing.T) {
	handler := NewExportHandler(records.NewStore())

	payload := `{"patientName":"Sarah Johnson","audioFile":"visit.mp3","clinicalNote":"note","format":"word"}`
	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.HandleExport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".docx")
}

func TestExportUnknownFormat(t *testing.T) {
	handler := NewExportHandler(records.NewStore())

	payload := `{"patientName":"Sarah Johnson","format":"pdf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.HandleExport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportEndpoints(t *testing.T) {
	handler := NewReportHandler(reports.NewGenerator(rand.NewSource(1)))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/templates", nil)
	rec := httptest.NewRecorder()
	handler.ListTemplates(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Len(t, resp.Data.([]interface{}), 6)

	req = httptest.NewRequest(http.MethodPost, "/api/reports/generate", strings.NewReader(`{"templateId":"quality_metrics","days":7}`))
	rec = httptest.NewRecorder()
	handler.GenerateReport(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/reports/generate", strings.NewReader(`{"templateId":"bogus"}`))
	rec = httptest.NewRecorder()
	handler.GenerateReport(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
