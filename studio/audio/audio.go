// Package audio provides audio playback for generated speech and voice
// previews.
package audio

import (
	"errors"
	"time"
)

const (
	// SampleRate is the sample rate the synthesis server emits (24kHz).
	SampleRate = 24000
	// Channels is the channel count of the playback context.
	Channels = 2
	// BitDepth of the PCM samples.
	BitDepth = 16
)

// Common errors for the audio package.
var (
	ErrEmptyClip         = errors.New("empty audio clip")
	ErrUnknownEncoding   = errors.New("unrecognized audio encoding")
	ErrInvalidWAV        = errors.New("invalid WAV data")
	ErrUnsupportedFormat = errors.New("unsupported PCM format")
)

// Clip is decoded PCM audio ready for playback: 16-bit little-endian signed
// samples.
type Clip struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Duration returns the playback length of the clip.
func (c Clip) Duration() time.Duration {
	bytesPerSec := c.SampleRate * c.Channels * (BitDepth / 8)
	if bytesPerSec == 0 {
		return 0
	}
	return time.Duration(float64(len(c.PCM)) / float64(bytesPerSec) * float64(time.Second))
}

// Player plays one clip at a time on a single output channel. Starting a new
// clip supersedes whatever was playing.
type Player interface {
	// Play stops any current playback and starts the clip.
	Play(clip Clip) error

	// Stop halts playback and resets position.
	Stop()

	// IsPlaying reports whether audio is currently audible.
	IsPlaying() bool
}

// Decode sniffs the encoding of raw audio bytes and decodes them to a Clip.
// WAV and MP3 are the only encodings the server produces.
func Decode(data []byte) (Clip, error) {
	if len(data) == 0 {
		return Clip{}, ErrEmptyClip
	}
	if len(data) >= 4 && string(data[:4]) == "RIFF" {
		return DecodeWAV(data)
	}
	// MP3: ID3 tag or frame sync.
	if len(data) >= 3 && string(data[:3]) == "ID3" {
		return DecodeMP3(data)
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return DecodeMP3(data)
	}
	return Clip{}, ErrUnknownEncoding
}
