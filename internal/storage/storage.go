// Package storage archives original audio recordings, keyed per patient.
// Implementations cover the local filesystem plus Amazon S3 and Google
// Cloud Storage for deployments that keep recordings off the host.
package storage

import (
	"context"
	"io"
)

// Provider is the interface all archive backends implement
type Provider interface {
	// Initialize sets up the provider with configuration
	Initialize(config map[string]string) error

	// Put archives a recording for the given patient and returns its
	// unique archive ID
	Put(ctx context.Context, patientID, filename string, content io.Reader, size int64, metadata map[string]string) (string, error)

	// Get retrieves an archived recording and its metadata by ID
	Get(ctx context.Context, id string) (io.ReadCloser, map[string]string, error)

	// Delete removes an archived recording
	Delete(ctx context.Context, id string) error

	// List returns the recordings archived for a patient; an empty
	// patientID lists everything
	List(ctx context.Context, patientID string) ([]Recording, error)

	// SignedURL returns a temporary access URL for a recording
	SignedURL(ctx context.Context, id string, expiryMinutes int) (string, error)
}

// Recording describes one archived audio file
type Recording struct {
	ID          string
	Filename    string
	PatientID   string
	Size        int64
	ContentType string
	ArchivedAt  int64
	Metadata    map[string]string
}
