// Package storage persists rendered tracks to a local directory served
// read-only over HTTP.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"talktrack/internal/audio"
	"talktrack/internal/conversation"
)

// saveAttempts bounds retry-with-new-id on a filename collision.
const saveAttempts = 3

// FileStore implements conversation.TrackStore on the local filesystem.
// Files are write-once: a name collision gets a fresh random suffix
// instead of an overwrite.
type FileStore struct {
	logger  *slog.Logger
	dir     string
	baseURL string
}

// NewFileStore constructs a FileStore writing under dir and building
// URLs from baseURL.
func NewFileStore(logger *slog.Logger, dir, baseURL string) *FileStore {
	if dir == "" {
		dir = "audio"
	}
	return &FileStore{
		logger:  logger,
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save writes data once to {slug}_{8-hex}.mp3 under the store
// directory and returns the file name, path, and reachable URL.
func (fs *FileStore) Save(data []byte, topic string) (conversation.StoredTrack, error) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return conversation.StoredTrack{}, fmt.Errorf("create output dir: %w", err)
	}

	slug := Slugify(topic)

	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		name := fmt.Sprintf("%s_%s.mp3", slug, randomSuffix())
		path := filepath.Join(fs.dir, name)

		err := writeExclusive(path, data)
		if errors.Is(err, os.ErrExist) {
			fs.logger.Warn("track filename collision, retrying", slog.String("file", name))
			lastErr = err
			continue
		}
		if err != nil {
			return conversation.StoredTrack{}, fmt.Errorf("write track: %w", err)
		}

		fs.logger.Info("track persisted",
			slog.String("file", name),
			slog.Int("bytes", len(data)),
		)

		return conversation.StoredTrack{
			FileName: name,
			Path:     path,
			URL:      fs.baseURL + "/audio/" + name,
		}, nil
	}

	return conversation.StoredTrack{}, fmt.Errorf("write track: %w", lastErr)
}

// TrackDuration re-reads a persisted track and reports its decoded
// duration. Convenience metadata, not required for correctness.
func (fs *FileStore) TrackDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()

	clip, err := audio.DecodeMP3(f)
	if err != nil {
		return 0, fmt.Errorf("decode track: %w", err)
	}
	return clip.Duration(), nil
}

// Slugify derives a filesystem-safe slug from a topic identifier:
// lowercased, spaces replaced with hyphens, everything outside
// [a-z0-9-] dropped.
func Slugify(topic string) string {
	lowered := strings.ToLower(strings.TrimSpace(topic))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "track"
	}
	return slug
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
