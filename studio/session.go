// Package studio implements the client-side orchestration core for the Voice
// Studio synthesis server: the synthesis request state machine, the hardware
// capability gate, the debounced voice-preview controller, and the audio
// artifact lifecycle. The core performs no I/O; it consumes Events and
// returns Effect descriptors for the UI layer to execute.
package studio

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Session is the single mutable record owned by the orchestration layer:
// synthesis mode, selected voice, speed, generation state, and the current
// artifact. All mutation is serialized through Update.
type Session struct {
	machine   *StateMachine
	mode      Mode
	voiceID   string
	speed     float64
	voices    map[string]Voice
	status    HardwareStatus
	artifacts *ArtifactStore

	// seq numbers submissions so that results arriving after a newer
	// submission has started are discarded rather than applied.
	seq uint64
}

// NewSession creates a session in its initial state: standard mode, default
// speed, no voices loaded.
func NewSession() *Session {
	return &Session{
		machine:   NewStateMachine(),
		mode:      ModeStandard,
		speed:     DefaultSpeed,
		voices:    map[string]Voice{},
		artifacts: NewArtifactStore(),
	}
}

// State returns the current orchestrator state.
func (s *Session) State() StateType { return s.machine.Current() }

// Generating reports whether a synthesis request is in flight.
func (s *Session) Generating() bool { return s.machine.Current() == StateGenerating }

// Mode returns the active synthesis mode.
func (s *Session) Mode() Mode { return s.mode }

// VoiceID returns the selected voice id.
func (s *Session) VoiceID() string { return s.voiceID }

// Speed returns the current speed factor.
func (s *Session) Speed() float64 { return s.speed }

// Status returns the hardware status fetched at startup.
func (s *Session) Status() HardwareStatus { return s.status }

// Artifacts returns the artifact store holding the current result.
func (s *Session) Artifacts() *ArtifactStore { return s.artifacts }

// Voice looks up a descriptor in the current mapping.
func (s *Session) Voice(id string) (Voice, bool) {
	v, ok := s.voices[id]
	return v, ok
}

// Voices returns the loaded descriptors sorted by id.
func (s *Session) Voices() []Voice {
	out := make([]Voice, 0, len(s.voices))
	for _, v := range s.voices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update is the session reducer: it applies one event and returns the side
// effects to execute. It is the only place session state changes.
func (s *Session) Update(event Event) []Effect {
	switch ev := event.(type) {
	case VoicesLoaded:
		return s.applyVoicesLoaded(ev)
	case SystemStatusLoaded:
		s.status = ev.Status
		return nil
	case ModeSelected:
		return s.applyModeSelected(ev)
	case VoiceSelected:
		if _, ok := s.voices[ev.ID]; ok {
			s.voiceID = ev.ID
		}
		return nil
	case SpeedChanged:
		s.speed = ClampSpeed(ev.Speed)
		return nil
	case SubmitRequested:
		return s.applySubmit(ev)
	case SynthesisSucceeded:
		return s.applySucceeded(ev)
	case SynthesisFailed:
		return s.applyFailed(ev)
	default:
		return nil
	}
}

func (s *Session) applyVoicesLoaded(ev VoicesLoaded) []Effect {
	// Replaced wholesale; descriptors are never mutated per-entry.
	s.voices = ev.Voices
	if _, ok := s.voices[s.voiceID]; !ok {
		s.voiceID = ""
	}
	if s.voiceID == "" {
		if _, ok := s.voices[ev.Default]; ok {
			s.voiceID = ev.Default
		}
	}
	return nil
}

func (s *Session) applyModeSelected(ev ModeSelected) []Effect {
	mode, err := TrySelectMode(ev.Mode, s.status)
	if err != nil {
		return []Effect{Notify{Text: s.denialMessage(err), IsError: true}}
	}
	s.mode = mode
	return nil
}

// denialMessage builds the user-facing capability denial, including the
// server's remediation hint when drivers are the problem.
func (s *Session) denialMessage(err error) string {
	if err == ErrDriverMissing && s.status.Message != "" {
		return fmt.Sprintf("Pro mode unavailable: %s", s.status.Message)
	}
	return fmt.Sprintf("Pro mode unavailable: %s", err)
}

func (s *Session) applySubmit(ev SubmitRequested) []Effect {
	// At-most-one-in-flight: a submit while generating is rejected at the
	// state level, not queued.
	if !s.machine.Current().CanSubmit() {
		return nil
	}

	if err := s.validateText(ev.Text); err != nil {
		return []Effect{Notify{Text: err.Error(), IsError: true}}
	}
	if _, ok := s.voices[s.voiceID]; !ok {
		return []Effect{Notify{Text: ErrUnknownVoice.Error(), IsError: true}}
	}

	s.machine.Transition(StateGenerating)
	s.seq++
	// A new generation invalidates the previous artifact immediately.
	s.artifacts.Clear()

	return []Effect{
		StopPlayback{},
		StartSynthesis{
			Seq:   s.seq,
			Text:  ev.Text,
			Voice: s.voiceID,
			Speed: s.speed,
			Mode:  s.mode,
		},
	}
}

func (s *Session) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if len([]rune(text)) > MaxTextLen {
		return ErrTextTooLong
	}
	return nil
}

func (s *Session) applySucceeded(ev SynthesisSucceeded) []Effect {
	// A result from a superseded submission must not resurrect old state.
	if ev.Seq != s.seq || s.machine.Current() != StateGenerating {
		return nil
	}
	s.machine.Transition(StateReady)
	s.artifacts.Set(ev.Result)
	return []Effect{
		PlayArtifact{URL: ev.Result.AudioURL},
		Notify{Text: fmt.Sprintf("Generated %.1fs of audio", ev.Result.Seconds)},
	}
}

func (s *Session) applyFailed(ev SynthesisFailed) []Effect {
	if ev.Seq != s.seq || s.machine.Current() != StateGenerating {
		return nil
	}
	s.machine.Transition(StateFailed)
	// A failed generation must not leave a half-configured player visible.
	s.artifacts.Clear()

	detail := ev.Detail
	if detail == "" {
		detail = "Generation failed"
	}
	return []Effect{
		StopPlayback{},
		Notify{Text: detail, IsError: true},
	}
}

// Download resolves the locator for the requested format into a SaveArtifact
// effect. A missing result or format is an error notification, never a
// silent fallback to another format.
func (s *Session) Download(format Format) []Effect {
	loc, err := s.artifacts.Locator(format)
	if err != nil {
		return []Effect{Notify{Text: err.Error(), IsError: true}}
	}
	return []Effect{SaveArtifact{URL: loc, Format: format}}
}

// CopyLink resolves the primary locator to an absolute reference for the
// system clipboard. Absence of a current result is an error, not a no-op.
func (s *Session) CopyLink(base *url.URL) []Effect {
	link, err := s.artifacts.AbsoluteLink(base)
	if err != nil {
		return []Effect{Notify{Text: err.Error(), IsError: true}}
	}
	return []Effect{SetClipboard{Link: link}}
}

// Discard clears the current artifact, stops playback, and requests a
// best-effort server-side delete of the primary file.
func (s *Session) Discard() []Effect {
	result, ok := s.artifacts.Current()
	if !ok {
		return nil
	}
	s.artifacts.Clear()
	return []Effect{
		StopPlayback{},
		DiscardArtifact{URL: result.AudioURL},
	}
}
