package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an encoded MP3 stream into a stereo PCM clip.
func DecodeMP3(r io.Reader) (Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return Clip{}, fmt.Errorf("decode mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return Clip{}, fmt.Errorf("read decoded samples: %w", err)
	}
	// full frames only; a trailing odd byte would be decoder garbage
	raw = raw[:len(raw)-len(raw)%(2*Channels)]

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}

	return Clip{SampleRate: dec.SampleRate(), Samples: samples}, nil
}

// EncodeMP3 encodes the whole track once, writing MP3 frames to w.
func EncodeMP3(w io.Writer, t *Track) error {
	enc := shine.NewEncoder(t.sampleRate, Channels)
	if err := enc.Write(w, t.samples); err != nil {
		return fmt.Errorf("encode mp3: %w", err)
	}
	return nil
}
