// Package audio provides PCM-level assembly of a conversation track:
// decoded clips are concatenated with silence in between and the whole
// track gets a fade-in and fade-out before the single final encode.
package audio

import (
	"fmt"
	"time"
)

// Channels is the channel count of every Track and Clip. The MP3
// decoder always yields interleaved 16-bit stereo, so the whole
// pipeline stays stereo.
const Channels = 2

// Clip is one decoded utterance.
type Clip struct {
	SampleRate int
	Samples    []int16 // interleaved stereo
}

// Duration reports the playing time of the clip.
func (c Clip) Duration() time.Duration {
	return framesToDuration(len(c.Samples)/Channels, c.SampleRate)
}

// Track accumulates interleaved stereo samples at a fixed rate.
type Track struct {
	sampleRate int
	samples    []int16
}

// NewTrack creates an empty track at the given sample rate.
func NewTrack(sampleRate int) *Track {
	return &Track{sampleRate: sampleRate}
}

// SampleRate reports the track sample rate.
func (t *Track) SampleRate() int {
	return t.sampleRate
}

// Frames reports the number of per-channel sample frames in the track.
func (t *Track) Frames() int {
	return len(t.samples) / Channels
}

// Duration reports the playing time of the track.
func (t *Track) Duration() time.Duration {
	return framesToDuration(t.Frames(), t.sampleRate)
}

// AppendSilence appends d worth of silent frames.
func (t *Track) AppendSilence(d time.Duration) {
	if d <= 0 {
		return
	}
	t.samples = append(t.samples, make([]int16, durationToFrames(d, t.sampleRate)*Channels)...)
}

// AppendClip appends a decoded clip. The clip must match the track
// sample rate; clips are never resampled.
func (t *Track) AppendClip(c Clip) error {
	if c.SampleRate != t.sampleRate {
		return fmt.Errorf("clip sample rate %d does not match track sample rate %d", c.SampleRate, t.sampleRate)
	}
	t.samples = append(t.samples, c.Samples...)
	return nil
}

// FadeIn applies a linear gain ramp from silence over the first d of
// the track. Shorter tracks ramp over their whole length.
func (t *Track) FadeIn(d time.Duration) {
	frames := durationToFrames(d, t.sampleRate)
	if frames > t.Frames() {
		frames = t.Frames()
	}
	if frames <= 0 {
		return
	}
	for i := 0; i < frames; i++ {
		gain := float64(i) / float64(frames)
		t.scaleFrame(i, gain)
	}
}

// FadeOut applies a linear gain ramp to silence over the last d of the
// track.
func (t *Track) FadeOut(d time.Duration) {
	total := t.Frames()
	frames := durationToFrames(d, t.sampleRate)
	if frames > total {
		frames = total
	}
	if frames <= 0 {
		return
	}
	for i := 0; i < frames; i++ {
		gain := float64(frames-1-i) / float64(frames)
		t.scaleFrame(total-frames+i, gain)
	}
}

func (t *Track) scaleFrame(frame int, gain float64) {
	base := frame * Channels
	for ch := 0; ch < Channels; ch++ {
		t.samples[base+ch] = int16(float64(t.samples[base+ch]) * gain)
	}
}

func durationToFrames(d time.Duration, sampleRate int) int {
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}

func framesToDuration(frames, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(int64(frames) * int64(time.Second) / int64(sampleRate))
}
