package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoContext is the process-wide playback context. oto allows only one
// context per process; both the primary and the preview player share it.
var (
	otoContext *oto.Context
	otoOnce    sync.Once
	otoErr     error
)

func playbackContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		options := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   100 * time.Millisecond,
		}
		ctx, ready, err := oto.NewContext(options)
		if err != nil {
			otoErr = fmt.Errorf("initializing audio context: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	return otoContext, otoErr
}

// OtoPlayer plays clips through the system audio device. Each instance is an
// independent output channel; primary playback and previews use separate
// instances and may play concurrently.
type OtoPlayer struct {
	mu      sync.Mutex
	current *oto.Player
}

// NewOtoPlayer creates a device-backed player.
func NewOtoPlayer() *OtoPlayer {
	return &OtoPlayer{}
}

// Play stops the current clip, if any, and starts the new one.
func (p *OtoPlayer) Play(clip Clip) error {
	if len(clip.PCM) == 0 {
		return ErrEmptyClip
	}
	ctx, err := playbackContext()
	if err != nil {
		return err
	}

	pcm := conformPCM(clip)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		_ = p.current.Close()
		p.current = nil
	}
	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	p.current = player
	return nil
}

// Stop halts playback and resets position.
func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		_ = p.current.Close()
		p.current = nil
	}
}

// IsPlaying reports whether audio is currently audible.
func (p *OtoPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.IsPlaying()
}

// conformPCM converts a clip to the context format: stereo 16-bit at
// SampleRate. Mono samples are duplicated across channels and rate
// mismatches are resampled by nearest sample.
func conformPCM(clip Clip) []byte {
	pcm := clip.PCM
	if clip.Channels == 1 {
		pcm = monoToStereo(pcm)
	}
	if clip.SampleRate != SampleRate && clip.SampleRate > 0 {
		pcm = resampleStereo(pcm, clip.SampleRate, SampleRate)
	}
	return pcm
}

func monoToStereo(pcm []byte) []byte {
	out := make([]byte, 0, len(pcm)*2)
	for i := 0; i+1 < len(pcm); i += 2 {
		out = append(out, pcm[i], pcm[i+1], pcm[i], pcm[i+1])
	}
	return out
}

func resampleStereo(pcm []byte, from, to int) []byte {
	const frameSize = 4 // two 16-bit channels
	frames := len(pcm) / frameSize
	if frames == 0 {
		return nil
	}
	outFrames := int(float64(frames) * float64(to) / float64(from))
	out := make([]byte, outFrames*frameSize)
	for i := 0; i < outFrames; i++ {
		src := int(float64(i) * float64(from) / float64(to))
		if src >= frames {
			src = frames - 1
		}
		copy(out[i*frameSize:(i+1)*frameSize], pcm[src*frameSize:(src+1)*frameSize])
	}
	return out
}
