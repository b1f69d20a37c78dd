package transcription

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/medtranscribe/internal/analysis"
	"github.com/example/medtranscribe/internal/records"
)

// fakeAnalyzer records calls and fails on request
type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeAnalyzer) TranscribeAndAnalyze(ctx context.Context, patientID, filename string, content io.Reader) (*analysis.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filename)
	f.mu.Unlock()

	if f.fail[filename] {
		return nil, errors.New("service unreachable")
	}

	return &analysis.Response{
		Status:        analysis.StatusSuccess,
		Transcription: "Doctor: transcription of " + filename,
		ClinicalAnalysis: &analysis.ClinicalAnalysis{
			PatientID:       analysis.FlexID(patientID),
			SessionDate:     "2024-03-15",
			ClinicalSummary: "Routine visit.",
			ConfidenceScore: 0.9,
		},
	}, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeArchiver struct {
	mu       sync.Mutex
	archived []string
	err      error
}

func (f *fakeArchiver) Archive(ctx context.Context, patientID string, candidate Candidate) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.archived = append(f.archived, candidate.Name)
	return "archive/" + candidate.Name, nil
}

func testBatch(names ...string) *Batch {
	batch := NewBatch()
	for i, name := range names {
		batch.Add(DefaultPolicy, Candidate{
			Name:        name,
			Size:        int64(100 + i),
			ContentType: "audio/mpeg",
			Data:        []byte("audio"),
		})
	}
	return batch
}

var testPatient = PatientSelection{ID: "3", Name: "Mike Wilson"}

func TestRunRequiresPatient(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pipeline := NewPipeline(analyzer)

	_, err := pipeline.Run(context.Background(), testBatch("visit.mp3"), PatientSelection{})
	assert.ErrorIs(t, err, ErrNoPatientSelected)

	// Precondition failures never touch the network
	assert.Equal(t, 0, analyzer.callCount())
}

func TestRunRequiresNonEmptyBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pipeline := NewPipeline(analyzer)

	_, err := pipeline.Run(context.Background(), NewBatch(), testPatient)
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Equal(t, 0, analyzer.callCount())
}

func TestRunProcessesBatchInOrder(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pipeline := NewPipeline(analyzer)

	results, err := pipeline.Run(context.Background(), testBatch("a.mp3", "b.mp3", "c.mp3"), testPatient)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// One result per candidate, in batch order
	assert.Equal(t, "a.mp3", results[0].Filename)
	assert.Equal(t, "b.mp3", results[1].Filename)
	assert.Equal(t, "c.mp3", results[2].Filename)

	// The default single worker submits strictly sequentially
	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3"}, analyzer.calls)
}

func TestRunSuccessPath(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	store := records.NewStore()
	pipeline := NewPipeline(analyzer, WithRecorder(store))

	results, err := pipeline.Run(context.Background(), testBatch("visit.mp3"), testPatient)
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.True(t, result.Success)
	assert.False(t, result.IsDemo)
	assert.Equal(t, "Doctor: transcription of visit.mp3", result.Transcription)
	assert.Contains(t, result.ClinicalNote, "Patient ID: 3")
	assert.Equal(t, "Processed", result.Status())

	// Persisted to the record store
	require.Equal(t, 1, store.Len())
	assert.Equal(t, 1, result.RecordID)
	record, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Mike Wilson", record.PatientName)
	assert.Equal(t, result.ClinicalNote, record.ClinicalNote)
}

func TestRunMasksFailuresAsDemo(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]bool{"visit.mp3": true}}
	pipeline := NewPipeline(analyzer)

	results, err := pipeline.Run(context.Background(), testBatch("visit.mp3"), testPatient)
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, OutcomeDemoFallback, result.Outcome)
	assert.True(t, result.Success)
	assert.True(t, result.IsDemo)
	assert.Empty(t, result.Error)
	assert.Equal(t, "Demo Mode", result.Status())

	assert.Contains(t, analysis.DemoTranscriptions, result.Transcription)
	assert.Contains(t, analysis.DemoClinicalNotes, result.ClinicalNote)
}

func TestRunMixedBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]bool{"bad.mp3": true}}
	store := records.NewStore()
	pipeline := NewPipeline(analyzer, WithRecorder(store))

	results, err := pipeline.Run(context.Background(), testBatch("bad.mp3", "good.mp3"), testPatient)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].IsDemo)
	assert.False(t, results[1].IsDemo)

	// Demo fallbacks persist by default, in batch order
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, results[0].RecordID)
	assert.Equal(t, 2, results[1].RecordID)
}

func TestRunCanSkipDemoPersistence(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]bool{"bad.mp3": true}}
	store := records.NewStore()
	pipeline := NewPipeline(analyzer, WithRecorder(store), WithPersistDemoResults(false))

	results, err := pipeline.Run(context.Background(), testBatch("bad.mp3", "good.mp3"), testPatient)
	require.NoError(t, err)

	assert.Equal(t, 0, results[0].RecordID)
	assert.Equal(t, 1, results[1].RecordID)
	assert.Equal(t, 1, store.Len())
}

func TestRunArchivesOnlyRealSuccesses(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]bool{"bad.mp3": true}}
	archiver := &fakeArchiver{}
	pipeline := NewPipeline(analyzer, WithArchiver(archiver))

	results, err := pipeline.Run(context.Background(), testBatch("bad.mp3", "good.mp3"), testPatient)
	require.NoError(t, err)

	assert.Equal(t, []string{"good.mp3"}, archiver.archived)
	assert.Empty(t, results[0].ArchiveID)
	assert.Equal(t, "archive/good.mp3", results[1].ArchiveID)
}

func TestRunToleratesArchiveFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	archiver := &fakeArchiver{err: errors.New("bucket gone")}
	pipeline := NewPipeline(analyzer, WithArchiver(archiver))

	results, err := pipeline.Run(context.Background(), testBatch("visit.mp3"), testPatient)
	require.NoError(t, err)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].ArchiveID)
}

func TestRejectedResult(t *testing.T) {
	result := RejectedResult("notes.pdf", `File "notes.pdf" is not a supported audio format.`)

	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.False(t, result.Success)
	assert.Equal(t, "Error", result.Status())
	assert.Equal(t, `File "notes.pdf" is not a supported audio format.`, result.Error)
}
