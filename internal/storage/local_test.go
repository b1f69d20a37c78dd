package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/medtranscribe/internal/transcription"
)

func newTestArchive(t *testing.T) *LocalArchive {
	t.Helper()
	archive := NewLocalArchive()
	require.NoError(t, archive.Initialize(map[string]string{"basePath": t.TempDir()}))
	return archive
}

func TestLocalArchiveRoundTrip(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	metadata := map[string]string{"contentType": "audio/mpeg", "filename": "morning visit.mp3"}
	id, err := archive.Put(ctx, "3", "morning visit.mp3", bytes.NewReader([]byte("audio-bytes")), 11, metadata)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "patients/3/"))
	assert.NotContains(t, id, " ", "spaces are replaced in archive keys")

	reader, gotMeta, err := archive.Get(ctx, id)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))
	assert.Equal(t, "audio/mpeg", gotMeta["contentType"])
}

func TestLocalArchiveListByPatient(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	_, err := archive.Put(ctx, "1", "a.mp3", bytes.NewReader([]byte("x")), 1, map[string]string{"patientId": "1"})
	require.NoError(t, err)
	_, err = archive.Put(ctx, "2", "b.mp3", bytes.NewReader([]byte("y")), 1, map[string]string{"patientId": "2"})
	require.NoError(t, err)

	one, err := archive.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "1", one[0].PatientID)

	all, err := archive.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := archive.List(ctx, "99")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLocalArchiveDelete(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	id, err := archive.Put(ctx, "1", "a.mp3", bytes.NewReader([]byte("x")), 1, nil)
	require.NoError(t, err)

	require.NoError(t, archive.Delete(ctx, id))
	_, _, err = archive.Get(ctx, id)
	assert.Error(t, err)
}

func TestAudioArchiveAdaptsProvider(t *testing.T) {
	archive := newTestArchive(t)
	audio := NewAudioArchive(archive)

	candidate := transcription.Candidate{
		Name:        "visit.mp3",
		Size:        5,
		ContentType: "audio/mpeg",
		Data:        []byte("audio"),
	}

	id, err := audio.Archive(context.Background(), "3", candidate)
	require.NoError(t, err)

	_, metadata, err := archive.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "visit.mp3", metadata["filename"])
	assert.Equal(t, "3", metadata["patientId"])
}

func TestFactoryCreatesLocalProvider(t *testing.T) {
	factory := NewFactory()

	provider, err := factory.CreateProvider("local", map[string]string{"basePath": t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, provider)

	_, err = factory.CreateProvider("tape-robot", nil)
	assert.Error(t, err)
}
