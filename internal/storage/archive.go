package storage

import (
	"bytes"
	"context"

	"github.com/example/medtranscribe/internal/transcription"
)

// AudioArchive adapts a Provider to the pipeline's Archiver interface
type AudioArchive struct {
	provider Provider
}

// NewAudioArchive wraps a provider for use by the upload pipeline
func NewAudioArchive(provider Provider) *AudioArchive {
	return &AudioArchive{provider: provider}
}

// Archive stores the original audio of a successfully analyzed candidate
func (a *AudioArchive) Archive(ctx context.Context, patientID string, candidate transcription.Candidate) (string, error) {
	metadata := map[string]string{
		"filename":    candidate.Name,
		"contentType": candidate.ContentType,
		"patientId":   patientID,
	}
	return a.provider.Put(ctx, patientID, candidate.Name, bytes.NewReader(candidate.Data), candidate.Size, metadata)
}
