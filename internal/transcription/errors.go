package transcription

import "errors"

// Common errors
var (
	ErrNoPatientSelected = errors.New("no patient selected")
	ErrEmptyBatch        = errors.New("no audio files to process")
	ErrIndexOutOfRange   = errors.New("candidate index out of range")
	ErrQueueFull         = errors.New("task queue is full")
)
