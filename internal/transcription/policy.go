// Package transcription implements the audio upload pipeline: batch
// curation, validation, remote submission and per-file fallback.
package transcription

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileSize is the upload size cap in bytes (10MB)
const MaxFileSize = 10 * 1024 * 1024

// Policy decides which upload candidates are accepted into a batch.
// A candidate passes when it matches an allowed MIME type or an allowed
// extension, and does not exceed the size cap.
type Policy struct {
	AllowedTypes []string
	AllowedExts  []string
	MaxSize      int64
}

// DefaultPolicy is the production validation policy
var DefaultPolicy = Policy{
	AllowedTypes: []string{
		"audio/mpeg",
		"audio/wav",
		"audio/mp4",
		"audio/m4a",
		"audio/x-m4a",
	},
	AllowedExts: []string{".mp3", ".wav", ".m4a"},
	MaxSize:     MaxFileSize,
}

// RejectionError carries the user-facing message for a rejected candidate
type RejectionError struct {
	Filename string
	Message  string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// Validate checks one candidate against the policy. The returned error,
// when non-nil, is always a *RejectionError with a displayable message.
func (p Policy) Validate(name string, size int64, contentType string) error {
	if !p.typeAllowed(name, contentType) {
		return &RejectionError{
			Filename: name,
			Message:  fmt.Sprintf("File %q is not a supported audio format.", name),
		}
	}

	if size > p.MaxSize {
		return &RejectionError{
			Filename: name,
			Message:  fmt.Sprintf("File %q is too large. Maximum size is 10MB.", name),
		}
	}

	return nil
}

// typeAllowed accepts a candidate matching either MIME type or extension
func (p Policy) typeAllowed(name, contentType string) bool {
	for _, t := range p.AllowedTypes {
		if contentType == t {
			return true
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range p.AllowedExts {
		if ext == allowed {
			return true
		}
	}

	return false
}
