package studio

import (
	"fmt"
	"net/url"
	"sync"
)

// ArtifactStore holds the most recent generation's locators. The current
// result is only ever replaced atomically with a fully populated new one, or
// cleared entirely; a partially written result is never observable.
type ArtifactStore struct {
	mu      sync.RWMutex
	current *GenerationResult
}

// NewArtifactStore creates an empty store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// Set replaces the current result.
func (s *ArtifactStore) Set(result GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := result
	s.current = &r
}

// Clear invalidates the current result.
func (s *ArtifactStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the current result, reporting false when none exists.
func (s *ArtifactStore) Current() (GenerationResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return GenerationResult{}, false
	}
	return *s.current, true
}

// Locator resolves the locator for the requested format. There is no silent
// fallback across formats: requesting MP3 when only WAV was produced is
// ErrFormatUnavailable.
func (s *ArtifactStore) Locator(format Format) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", ErrNoArtifact
	}
	switch format {
	case FormatWAV:
		return s.current.AudioURL, nil
	case FormatMP3:
		if s.current.MP3URL == "" {
			return "", ErrFormatUnavailable
		}
		return s.current.MP3URL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormatUnavailable, format)
	}
}

// AbsoluteLink resolves the primary locator against the server base URL.
// Absence of a current result is an error, not a no-op.
func (s *ArtifactStore) AbsoluteLink(base *url.URL) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", ErrNoArtifact
	}
	ref, err := url.Parse(s.current.AudioURL)
	if err != nil {
		return "", fmt.Errorf("invalid artifact locator: %w", err)
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
