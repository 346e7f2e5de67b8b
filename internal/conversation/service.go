package conversation

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"talktrack/internal/audio"
)

// Assembly timings. The lead-in gives players a moment before the
// first word; the longer pause follows lines carrying an emotional
// beat so the next speaker does not step on it.
const (
	leadInSilence = 500 * time.Millisecond
	shortPause    = 300 * time.Millisecond
	longPause     = 500 * time.Millisecond
	fadeInLength  = 1200 * time.Millisecond
	fadeOutLength = 1500 * time.Millisecond
)

var emotionalKeywords = []string{"honestly", "ahh", "umm", "wait", "sir", "hmm"}

// Renderer turns a dialogue script into one assembled MP3 track.
type Renderer struct {
	logger *slog.Logger
	speech SpeechSynthesizer
	voices *VoiceTable
}

// NewRenderer constructs a Renderer.
func NewRenderer(logger *slog.Logger, speech SpeechSynthesizer, voices *VoiceTable) *Renderer {
	return &Renderer{
		logger: logger,
		speech: speech,
		voices: voices,
	}
}

// RenderConversation synthesizes every non-empty segment in order,
// assembles the decoded clips with pauses and fades, and re-encodes
// the whole track once. A single provider failure aborts the render;
// partial results are discarded.
func (r *Renderer) RenderConversation(ctx context.Context, req RenderRequest) (RenderedTrack, error) {
	if len(req.Segments) == 0 {
		return RenderedTrack{}, ErrNoSegments
	}

	r.logger.Info("rendering conversation",
		slog.String("topic_id", req.TopicID),
		slog.Int("segments", len(req.Segments)),
	)

	var track *audio.Track
	rendered := 0

	for i, seg := range req.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		profile := r.voices.Resolve(seg.Speaker)

		r.logger.Debug("synthesizing segment",
			slog.Int("segment", i),
			slog.String("speaker", seg.Speaker),
			slog.String("voice", profile.Voice),
			slog.Float64("speed", profile.Speed),
			slog.Int("text_length", len(text)),
		)

		data, err := r.speech.Synthesize(ctx, SpeechRequest{
			Text:  text,
			Voice: profile.Voice,
			Speed: profile.Speed,
		})
		if err != nil {
			r.logger.Error("segment synthesis failed",
				slog.Int("segment", i),
				slog.String("speaker", seg.Speaker),
				slog.String("error", err.Error()),
			)
			return RenderedTrack{}, fmt.Errorf("synthesize segment %d: %w", i, err)
		}

		clip, err := audio.DecodeMP3(bytes.NewReader(data))
		if err != nil {
			return RenderedTrack{}, fmt.Errorf("decode segment %d: %w", i, err)
		}

		if track == nil {
			track = audio.NewTrack(clip.SampleRate)
			track.AppendSilence(leadInSilence)
		}
		if err := track.AppendClip(clip); err != nil {
			return RenderedTrack{}, fmt.Errorf("append segment %d: %w", i, err)
		}
		track.AppendSilence(pauseAfter(text))
		rendered++
	}

	if track == nil {
		return RenderedTrack{}, ErrNoAudio
	}

	track.FadeIn(fadeInLength)
	track.FadeOut(fadeOutLength)

	var buf bytes.Buffer
	if err := audio.EncodeMP3(&buf, track); err != nil {
		return RenderedTrack{}, fmt.Errorf("encode track: %w", err)
	}

	r.logger.Info("conversation rendered",
		slog.String("topic_id", req.TopicID),
		slog.Int("rendered_segments", rendered),
		slog.Duration("duration", track.Duration()),
		slog.Int("bytes", buf.Len()),
	)

	return RenderedTrack{
		Data:     buf.Bytes(),
		Duration: track.Duration(),
		Segments: rendered,
	}, nil
}

// pauseAfter picks the silence inserted after a line: lines containing
// an emotional keyword get the longer beat.
func pauseAfter(text string) time.Duration {
	lowered := strings.ToLower(text)
	for _, kw := range emotionalKeywords {
		if strings.Contains(lowered, kw) {
			return longPause
		}
	}
	return shortPause
}
