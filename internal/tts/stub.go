package tts

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"talktrack/internal/audio"
	"talktrack/internal/conversation"
)

const stubSampleRate = 44100

// StubClient simulates the speech provider for development and tests.
// It produces a valid silent MP3 whose length grows with the text, so
// the full assembly pipeline runs without network access.
type StubClient struct{}

// NewStubClient constructs StubClient.
func NewStubClient() *StubClient {
	return &StubClient{}
}

// Synthesize returns a silent MP3 clip of 150ms plus 20ms per rune.
func (s *StubClient) Synthesize(ctx context.Context, req conversation.SpeechRequest) ([]byte, error) {
	length := 150*time.Millisecond + time.Duration(len([]rune(req.Text)))*20*time.Millisecond

	track := audio.NewTrack(stubSampleRate)
	track.AppendSilence(length)

	var buf bytes.Buffer
	if err := audio.EncodeMP3(&buf, track); err != nil {
		return nil, fmt.Errorf("encode stub clip: %w", err)
	}
	return buf.Bytes(), nil
}
