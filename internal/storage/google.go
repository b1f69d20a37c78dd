package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSArchive implements Provider on Google Cloud Storage
type GCSArchive struct {
	client     *storage.Client
	bucketName string
	prefix     string
}

// NewGCSArchive creates a Google Cloud Storage archive provider
func NewGCSArchive() *GCSArchive {
	return &GCSArchive{}
}

// Initialize sets up the GCS archive with configuration
func (g *GCSArchive) Initialize(config map[string]string) error {
	var opts []option.ClientOption
	if credFile, ok := config["credentialFile"]; ok && credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create GCS client: %w", err)
	}
	g.client = client

	bucketName, ok := config["bucket"]
	if !ok || bucketName == "" {
		return fmt.Errorf("bucket is required for GCS archive")
	}
	g.bucketName = bucketName

	if prefix, ok := config["prefix"]; ok {
		g.prefix = prefix
	}

	return nil
}

// Put archives a recording under the patient's object prefix
func (g *GCSArchive) Put(ctx context.Context, patientID, filename string, content io.Reader, size int64, metadata map[string]string) (string, error) {
	objectName := g.prefix + archiveKey(patientID, filename)

	writer := g.client.Bucket(g.bucketName).Object(objectName).NewWriter(ctx)
	writer.Metadata = metadata

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write recording to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize recording upload to GCS: %w", err)
	}

	return objectName, nil
}

// Get retrieves an archived recording from GCS
func (g *GCSArchive) Get(ctx context.Context, id string) (io.ReadCloser, map[string]string, error) {
	obj := g.client.Bucket(g.bucketName).Object(id)

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get recording attributes from GCS: %w", err)
	}

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open recording from GCS: %w", err)
	}

	return reader, attrs.Metadata, nil
}

// Delete removes a recording from GCS
func (g *GCSArchive) Delete(ctx context.Context, id string) error {
	if err := g.client.Bucket(g.bucketName).Object(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete recording from GCS: %w", err)
	}
	return nil
}

// List returns the recordings archived for a patient
func (g *GCSArchive) List(ctx context.Context, patientID string) ([]Recording, error) {
	fullPrefix := g.prefix
	if patientID != "" {
		fullPrefix += patientPrefix(patientID)
	}

	it := g.client.Bucket(g.bucketName).Objects(ctx, &storage.Query{Prefix: fullPrefix})

	var recordings []Recording
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list recordings from GCS: %w", err)
		}

		recordings = append(recordings, Recording{
			ID:          attrs.Name,
			Filename:    filepath.Base(attrs.Name),
			PatientID:   attrs.Metadata["patientId"],
			Size:        attrs.Size,
			ContentType: attrs.ContentType,
			ArchivedAt:  attrs.Updated.Unix(),
			Metadata:    attrs.Metadata,
		})
	}

	return recordings, nil
}

// SignedURL returns a signed download URL for a recording in GCS
func (g *GCSArchive) SignedURL(ctx context.Context, id string, expiryMinutes int) (string, error) {
	opts := &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(time.Duration(expiryMinutes) * time.Minute),
	}

	url, err := g.client.Bucket(g.bucketName).SignedURL(id, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}
