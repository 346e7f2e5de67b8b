package storage

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"talktrack/internal/audio"
)

var trackNamePattern = regexp.MustCompile(`^[a-z0-9-]+_[0-9a-f]{8}\.mp3$`)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFileStore(logger, t.TempDir(), "http://example.com/")
}

func TestFileStoreSave(t *testing.T) {
	store := newTestStore(t)
	data := []byte("fake mp3 bytes")

	stored, err := store.Save(data, "Cell Division Basics")
	require.NoError(t, err)

	require.Regexp(t, trackNamePattern, stored.FileName)
	require.True(t, len(stored.FileName) > len("cell-division-basics_"))
	require.Contains(t, stored.FileName, "cell-division-basics_")
	require.Equal(t, "http://example.com/audio/"+stored.FileName, stored.URL)

	onDisk, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	require.Equal(t, data, onDisk)
}

func TestFileStoreSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save([]byte("a"), "mitosis")
	require.NoError(t, err)
	second, err := store.Save([]byte("b"), "mitosis")
	require.NoError(t, err)

	require.NotEqual(t, first.FileName, second.FileName)
}

func TestFileStoreNeverOverwrites(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save([]byte("original"), "mitosis")
	require.NoError(t, err)

	// writing the same topic again must land in a different file
	_, err = store.Save([]byte("other"), "mitosis")
	require.NoError(t, err)

	onDisk, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	require.Equal(t, []byte("original"), onDisk)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "cell-division", Slugify("Cell Division"))
	require.Equal(t, "mitosis", Slugify("mitosis"))
	require.Equal(t, "dna-101", Slugify("DNA 101!"))
	require.Equal(t, "a-b", Slugify("  a_b  "))
	require.Equal(t, "track", Slugify("???"))
	require.Equal(t, "track", Slugify(""))
}

func TestTrackDuration(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewFileStore(logger, dir, "http://example.com")

	track := audio.NewTrack(44100)
	track.AppendSilence(600 * time.Millisecond)
	var buf bytes.Buffer
	require.NoError(t, audio.EncodeMP3(&buf, track))

	path := filepath.Join(dir, "probe.mp3")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	d, err := store.TrackDuration(path)
	require.NoError(t, err)
	require.InDelta(t, float64(600*time.Millisecond), float64(d), float64(150*time.Millisecond))
}

func TestTrackDurationMissingFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.TrackDuration(filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)
}
