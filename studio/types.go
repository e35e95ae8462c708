package studio

import (
	"math"
	"time"
)

// Mode selects which backend engine services a synthesis request.
type Mode string

const (
	// ModeStandard is the CPU-friendly Kokoro engine.
	ModeStandard Mode = "standard"
	// ModePremium is the GPU-only pro engine, guarded by the capability gate.
	ModePremium Mode = "premium"
)

// APIModel returns the wire name the synthesis API expects for this mode.
func (m Mode) APIModel() string {
	if m == ModePremium {
		return "pro"
	}
	return "kokoro"
}

// Format identifies an audio artifact format.
type Format string

const (
	// FormatWAV is the primary format every generation produces.
	FormatWAV Format = "wav"
	// FormatMP3 is the compressed secondary format, produced best-effort.
	FormatMP3 Format = "mp3"
)

// Voice describes a single synthesis voice. Descriptors are immutable; the
// full id → descriptor mapping is loaded once per session and replaced
// wholesale, never mutated per-entry.
type Voice struct {
	ID     string
	Name   string
	Gender string
	Accent string
	Style  string
	Lang   string
}

// Speed limits accepted by the synthesis server.
const (
	MinSpeed     = 0.5
	MaxSpeed     = 2.0
	DefaultSpeed = 1.0
	SpeedStep    = 0.1
)

// ClampSpeed constrains a speed factor to the server's accepted range.
func ClampSpeed(speed float64) float64 {
	return math.Min(MaxSpeed, math.Max(MinSpeed, speed))
}

// MaxTextLen is the maximum accepted submission length in characters.
const MaxTextLen = 10000

// GenerationResult holds the locators and metadata of one generated audio
// artifact. Exactly one result is current at a time; a new successful result
// supersedes the previous one entirely.
type GenerationResult struct {
	// AudioURL is the primary (WAV) locator, always present on success.
	AudioURL string
	// MP3URL is the secondary compressed locator; empty when the server did
	// not produce one.
	MP3URL string
	// Seconds is the duration of the generated audio.
	Seconds float64
	// Voice is the voice id the audio was generated with.
	Voice string
}

// HasMP3 reports whether the secondary compressed format was produced.
func (r GenerationResult) HasMP3() bool {
	return r.MP3URL != ""
}

// Duration returns the audio length as a time.Duration.
func (r GenerationResult) Duration() time.Duration {
	return time.Duration(r.Seconds * float64(time.Second))
}
