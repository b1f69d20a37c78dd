package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// patientPrefix lays recordings out as patients/<id>/<timestamp>-<name>
func patientPrefix(patientID string) string {
	return "patients/" + patientID + "/"
}

func archiveKey(patientID, filename string) string {
	name := strings.ReplaceAll(filename, " ", "_")
	return fmt.Sprintf("%s%d-%s", patientPrefix(patientID), time.Now().UnixNano(), name)
}

// LocalArchive implements Provider on the local filesystem. Metadata lives
// in a JSON sidecar next to each recording.
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates a local filesystem archive provider
func NewLocalArchive() *LocalArchive {
	return &LocalArchive{}
}

// Initialize sets up the local archive with configuration
func (l *LocalArchive) Initialize(config map[string]string) error {
	if path, ok := config["basePath"]; ok && path != "" {
		l.basePath = path
	} else {
		l.basePath = "./audio-archive"
	}

	if err := os.MkdirAll(l.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	return nil
}

// Put archives a recording under the patient's directory
func (l *LocalArchive) Put(ctx context.Context, patientID, filename string, content io.Reader, size int64, metadata map[string]string) (string, error) {
	id := archiveKey(patientID, filename)
	path := filepath.Join(l.basePath, filepath.FromSlash(id))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create patient directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("failed to write recording: %w", err)
	}

	if err := l.writeSidecar(path, metadata); err != nil {
		return "", err
	}

	return id, nil
}

// Get retrieves an archived recording by ID
func (l *LocalArchive) Get(ctx context.Context, id string) (io.ReadCloser, map[string]string, error) {
	path := filepath.Join(l.basePath, filepath.FromSlash(id))

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open recording: %w", err)
	}

	return file, l.readSidecar(path), nil
}

// Delete removes a recording and its sidecar
func (l *LocalArchive) Delete(ctx context.Context, id string) error {
	path := filepath.Join(l.basePath, filepath.FromSlash(id))

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	os.Remove(sidecarPath(path))
	return nil
}

// List returns recordings for a patient, or everything when patientID is empty
func (l *LocalArchive) List(ctx context.Context, patientID string) ([]Recording, error) {
	root := l.basePath
	if patientID != "" {
		root = filepath.Join(l.basePath, "patients", patientID)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			return nil, nil
		}
	}

	var recordings []Recording
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		rel, _ := filepath.Rel(l.basePath, path)
		metadata := l.readSidecar(path)

		filename := info.Name()
		if original, ok := metadata["filename"]; ok && original != "" {
			filename = original
		}

		recordings = append(recordings, Recording{
			ID:          filepath.ToSlash(rel),
			Filename:    filename,
			PatientID:   metadata["patientId"],
			Size:        info.Size(),
			ContentType: metadata["contentType"],
			ArchivedAt:  info.ModTime().Unix(),
			Metadata:    metadata,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	return recordings, nil
}

// SignedURL returns a file:// URL for local recordings
func (l *LocalArchive) SignedURL(ctx context.Context, id string, expiryMinutes int) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(l.basePath, filepath.FromSlash(id)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive path: %w", err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

func sidecarPath(path string) string {
	return path + ".json"
}

func (l *LocalArchive) writeSidecar(path string, metadata map[string]string) error {
	if len(metadata) == 0 {
		return nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode recording metadata: %w", err)
	}
	if err := os.WriteFile(sidecarPath(path), data, 0644); err != nil {
		return fmt.Errorf("failed to write recording metadata: %w", err)
	}
	return nil
}

func (l *LocalArchive) readSidecar(path string) map[string]string {
	metadata := make(map[string]string)
	if data, err := os.ReadFile(sidecarPath(path)); err == nil {
		json.Unmarshal(data, &metadata)
	}
	return metadata
}
