package transcription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func audioCandidate(name string, size int64) Candidate {
	return Candidate{Name: name, Size: size, ContentType: "audio/mpeg"}
}

func TestBatchAddPreservesOrder(t *testing.T) {
	batch := NewBatch()
	rejections := batch.Add(DefaultPolicy,
		audioCandidate("first.mp3", 100),
		audioCandidate("second.wav", 200),
		audioCandidate("third.m4a", 300),
	)

	assert.Empty(t, rejections)
	require.Equal(t, 3, batch.Len())

	snapshot := batch.Snapshot()
	assert.Equal(t, "first.mp3", snapshot[0].Name)
	assert.Equal(t, "second.wav", snapshot[1].Name)
	assert.Equal(t, "third.m4a", snapshot[2].Name)
}

func TestBatchAddReturnsRejectionMessages(t *testing.T) {
	batch := NewBatch()
	rejections := batch.Add(DefaultPolicy,
		audioCandidate("ok.mp3", 100),
		Candidate{Name: "slides.pptx", Size: 100, ContentType: "application/vnd.ms-powerpoint"},
		Candidate{Name: "huge.mp3", Size: MaxFileSize + 1, ContentType: "audio/mpeg"},
	)

	require.Len(t, rejections, 2)
	assert.Equal(t, `File "slides.pptx" is not a supported audio format.`, rejections[0])
	assert.Equal(t, `File "huge.mp3" is too large. Maximum size is 10MB.`, rejections[1])
	assert.Equal(t, 1, batch.Len())
}

func TestBatchDropsDuplicatesSilently(t *testing.T) {
	batch := NewBatch()
	batch.Add(DefaultPolicy, audioCandidate("visit.mp3", 100))

	// Same name and size: dropped without a rejection message
	rejections := batch.Add(DefaultPolicy, audioCandidate("visit.mp3", 100))
	assert.Empty(t, rejections)
	assert.Equal(t, 1, batch.Len())

	// Same name, different size: a distinct file
	batch.Add(DefaultPolicy, audioCandidate("visit.mp3", 101))
	assert.Equal(t, 2, batch.Len())
}

func TestBatchRemove(t *testing.T) {
	batch := NewBatch()
	batch.Add(DefaultPolicy,
		audioCandidate("a.mp3", 1),
		audioCandidate("b.mp3", 2),
		audioCandidate("c.mp3", 3),
	)

	require.NoError(t, batch.Remove(1))
	snapshot := batch.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "a.mp3", snapshot[0].Name)
	assert.Equal(t, "c.mp3", snapshot[1].Name)
}

func TestBatchRemoveOutOfRangeLeavesBatchUntouched(t *testing.T) {
	batch := NewBatch()
	batch.Add(DefaultPolicy, audioCandidate("a.mp3", 1))

	assert.ErrorIs(t, batch.Remove(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, batch.Remove(1), ErrIndexOutOfRange)
	assert.Equal(t, 1, batch.Len())
}

func TestBatchSnapshotIsIsolated(t *testing.T) {
	batch := NewBatch()
	batch.Add(DefaultPolicy, audioCandidate("a.mp3", 1))

	snapshot := batch.Snapshot()
	batch.Clear()

	assert.Equal(t, 0, batch.Len())
	require.Len(t, snapshot, 1)
	assert.Equal(t, "a.mp3", snapshot[0].Name)
}
