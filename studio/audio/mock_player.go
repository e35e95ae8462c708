package audio

import (
	"sync"
)

// MockPlayer implements Player for testing. It records every call without
// touching an audio device.
type MockPlayer struct {
	mu      sync.Mutex
	playing bool

	// History of played clips, oldest first.
	Played []Clip
	// Stops counts Stop calls.
	Stops int

	// PlayErr is returned from Play when set, for error injection.
	PlayErr error
}

// NewMockPlayer creates a mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records the clip and marks the player as playing.
func (m *MockPlayer) Play(clip Clip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayErr != nil {
		return m.PlayErr
	}
	m.Played = append(m.Played, clip)
	m.playing = true
	return nil
}

// Stop marks the player as stopped.
func (m *MockPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stops++
	m.playing = false
}

// IsPlaying reports the recorded playing state.
func (m *MockPlayer) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// LastPlayed returns the most recently played clip, if any.
func (m *MockPlayer) LastPlayed() (Clip, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Played) == 0 {
		return Clip{}, false
	}
	return m.Played[len(m.Played)-1], true
}
