package conversation

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSegments signals a request without any dialogue segments.
	ErrNoSegments = errors.New("no segments provided")

	// ErrNoAudio signals that every segment was filtered out before
	// synthesis, so no track could be produced.
	ErrNoAudio = errors.New("no audio generated from segments")
)

// Segment is a single speaker+text line of dialogue.
type Segment struct {
	Speaker string
	Text    string
}

// RenderRequest describes one conversation to render.
type RenderRequest struct {
	TopicID  string
	Segments []Segment
}

// RenderedTrack is the assembled audio for a whole conversation.
type RenderedTrack struct {
	Data     []byte
	Duration time.Duration
	Segments int // segments that produced audio
}

// VoiceProfile is the synthetic voice and speaking rate assigned to a
// speaker.
type VoiceProfile struct {
	Voice string
	Speed float64
}

// SpeechRequest describes one utterance for the synthesis provider.
type SpeechRequest struct {
	Text  string
	Voice string
	Speed float64
}

// SpeechSynthesizer converts a single utterance into encoded MP3 bytes.
// Implementations make one network call per invocation and surface
// provider errors unmodified; there are no retries at this layer.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// StoredTrack identifies a persisted track.
type StoredTrack struct {
	FileName string
	Path     string
	URL      string
}

// TrackStore persists rendered tracks for static serving.
type TrackStore interface {
	// Save writes data once under a fresh unique name derived from
	// the topic identifier and returns where it landed.
	Save(data []byte, topic string) (StoredTrack, error)

	// TrackDuration re-reads a persisted track and reports its
	// decoded duration.
	TrackDuration(path string) (time.Duration, error)
}
