package audio

import (
	"bytes"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes MP3 bytes (voice previews, compressed artifacts) into a
// Clip. go-mp3 always yields 16-bit stereo at the source sample rate.
func DecodeMP3(data []byte) (Clip, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return Clip{}, fmt.Errorf("decoding mp3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return Clip{}, fmt.Errorf("reading mp3 samples: %w", err)
	}
	return Clip{
		PCM:        pcm,
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}, nil
}
