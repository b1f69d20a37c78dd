package transcription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/example/medtranscribe/internal/analysis"
	"github.com/example/medtranscribe/internal/models"
	"github.com/example/medtranscribe/internal/notes"
)

// Analyzer is the remote transcription and analysis service
type Analyzer interface {
	TranscribeAndAnalyze(ctx context.Context, patientID, filename string, content io.Reader) (*analysis.Response, error)
}

// Recorder persists completed results as medical records
type Recorder interface {
	Append(patientID, patientName, transcription, clinicalNote string) models.MedicalRecord
}

// Archiver stores the original audio of successfully analyzed candidates
type Archiver interface {
	Archive(ctx context.Context, patientID string, candidate Candidate) (string, error)
}

// ProgressReporter receives per-candidate lifecycle events during a run
type ProgressReporter interface {
	CandidateStarted(runID string, index int, filename string)
	CandidateFinished(runID string, index int, result *Result)
}

// PatientSelection identifies the patient a batch run is attributed to
type PatientSelection struct {
	ID   string
	Name string
}

// Pipeline turns a curated batch of audio files plus a selected patient into
// an ordered sequence of per-file analysis outcomes, tolerant of remote
// service failure. Each Run is a stateless sweep over a batch snapshot.
type Pipeline struct {
	analyzer    Analyzer
	records     Recorder
	archive     Archiver
	progress    ProgressReporter
	concurrency int
	persistDemo bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRecorder persists successful results to the given record store
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.records = r }
}

// WithArchiver archives the audio of successfully analyzed candidates
func WithArchiver(a Archiver) Option {
	return func(p *Pipeline) { p.archive = a }
}

// WithProgressReporter emits per-candidate progress events
func WithProgressReporter(r ProgressReporter) Option {
	return func(p *Pipeline) { p.progress = r }
}

// WithConcurrency sets how many candidates may be in flight at once.
// The default of 1 preserves strictly sequential submission.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// WithPersistDemoResults controls whether demo fallback results are written
// to the record store like real ones
func WithPersistDemoResults(persist bool) Option {
	return func(p *Pipeline) { p.persistDemo = persist }
}

// WithRandSource seeds the fallback content selection, for tests
func WithRandSource(src rand.Source) Option {
	return func(p *Pipeline) { p.rng = rand.New(src) }
}

// NewPipeline creates a pipeline backed by the given analyzer
func NewPipeline(analyzer Analyzer, opts ...Option) *Pipeline {
	p := &Pipeline{
		analyzer:    analyzer,
		concurrency: 1,
		persistDemo: true,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes every candidate in the batch for the selected patient and
// returns one result per candidate, in batch order. Preconditions are
// checked before any network activity. Once they pass, Run cannot fail:
// per-candidate errors are masked as demo fallback results.
func (p *Pipeline) Run(ctx context.Context, batch *Batch, patient PatientSelection) ([]*Result, error) {
	if patient.ID == "" {
		return nil, ErrNoPatientSelected
	}

	candidates := batch.Snapshot()
	if len(candidates) == 0 {
		return nil, ErrEmptyBatch
	}

	runID := fmt.Sprintf("run-%d", time.Now().UnixNano())

	// A per-run pool keeps runs isolated from each other and makes the
	// queue large enough that Submit cannot reject a candidate.
	pool := NewWorkerPool(p.concurrency, len(candidates))
	defer pool.Stop()

	tasks := make([]*Task, len(candidates))
	for i, candidate := range candidates {
		i, candidate := i, candidate
		task := NewTask(fmt.Sprintf("%s-%d", runID, i), i, func() *Result {
			if p.progress != nil {
				p.progress.CandidateStarted(runID, i, candidate.Name)
			}
			result := p.submitOne(ctx, candidate, patient)
			if p.progress != nil {
				p.progress.CandidateFinished(runID, i, result)
			}
			return result
		})
		tasks[i] = task
		if err := pool.Submit(task); err != nil {
			// Unreachable with a queue sized to the batch; masked anyway
			log.Printf("Failed to queue %s: %v", candidate.Name, err)
			fallback := p.demoResult(candidate.Name)
			task.Result <- fallback
		}
	}

	results := make([]*Result, len(candidates))
	for i, task := range tasks {
		results[i] = <-task.Result
	}

	// Persist and archive in batch order, from the single run goroutine
	for i, result := range results {
		if result.Success && p.records != nil && (!result.IsDemo || p.persistDemo) {
			record := p.records.Append(patient.ID, patient.Name, result.Transcription, result.ClinicalNote)
			result.RecordID = record.ID
		}

		if result.Outcome == OutcomeSuccess && p.archive != nil {
			id, err := p.archive.Archive(ctx, patient.ID, candidates[i])
			if err != nil {
				log.Printf("Failed to archive %s: %v", candidates[i].Name, err)
			} else {
				result.ArchiveID = id
			}
		}
	}

	return results, nil
}

// submitOne sends a single candidate to the remote service. Any failure is
// converted into a demo fallback result so that one bad file can never abort
// the batch or surface a hard error.
func (p *Pipeline) submitOne(ctx context.Context, candidate Candidate, patient PatientSelection) *Result {
	resp, err := p.analyzer.TranscribeAndAnalyze(ctx, patient.ID, candidate.Name, bytes.NewReader(candidate.Data))
	if err != nil {
		log.Printf("Analysis failed for %s, substituting demo content: %v", candidate.Name, err)
		return p.demoResult(candidate.Name)
	}

	return &Result{
		Filename:        candidate.Name,
		Outcome:         OutcomeSuccess,
		Success:         true,
		Transcription:   resp.Transcription,
		ClinicalNote:    notes.RenderClinicalNote(resp),
		MedicalEntities: resp.MedicalEntities,
		Response:        resp,
	}
}

// demoResult fabricates a demonstration result from the fixed content pools
func (p *Pipeline) demoResult(filename string) *Result {
	p.rngMu.Lock()
	transcription := analysis.DemoTranscription(p.rng)
	note := analysis.DemoClinicalNote(p.rng)
	p.rngMu.Unlock()

	return &Result{
		Filename:      filename,
		Outcome:       OutcomeDemoFallback,
		Success:       true,
		IsDemo:        true,
		Transcription: transcription,
		ClinicalNote:  note,
	}
}

// RejectedResult builds the result variant for a file the policy turned away
func RejectedResult(filename, message string) *Result {
	return &Result{
		Filename: filename,
		Outcome:  OutcomeRejected,
		Success:  false,
		Error:    message,
	}
}
