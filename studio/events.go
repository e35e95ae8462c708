package studio

// Event is the closed union of inputs consumed by the session reducer.
// Modeling UI intent as explicit events keeps the orchestration logic
// deterministic and testable without a rendering surface.
type Event interface {
	isEvent()
}

// SubmitRequested asks for a new generation of the given text with the
// session's current voice, speed, and mode.
type SubmitRequested struct {
	Text string
}

// ModeSelected asks to switch the synthesis mode. Premium requests pass
// through the capability gate.
type ModeSelected struct {
	Mode Mode
}

// VoiceSelected changes the active voice. Unknown ids are ignored.
type VoiceSelected struct {
	ID string
}

// SpeedChanged adjusts the speed factor. Out-of-range values are clamped.
type SpeedChanged struct {
	Speed float64
}

// VoicesLoaded replaces the voice mapping wholesale, selecting the server's
// default voice when none is active.
type VoicesLoaded struct {
	Default string
	Voices  map[string]Voice
}

// SystemStatusLoaded records the one-shot hardware verdict.
type SystemStatusLoaded struct {
	Status HardwareStatus
}

// SynthesisSucceeded reports a completed synthesis call. Seq must match the
// sequence number issued with the corresponding StartSynthesis effect; stale
// results are discarded.
type SynthesisSucceeded struct {
	Seq    uint64
	Result GenerationResult
}

// SynthesisFailed reports a failed synthesis call: transport error, non-2xx
// status, or an application-level failure flag. Detail carries the
// server-supplied message when present.
type SynthesisFailed struct {
	Seq    uint64
	Detail string
	Err    error
}

func (SubmitRequested) isEvent()    {}
func (ModeSelected) isEvent()       {}
func (VoiceSelected) isEvent()      {}
func (SpeedChanged) isEvent()       {}
func (VoicesLoaded) isEvent()       {}
func (SystemStatusLoaded) isEvent() {}
func (SynthesisSucceeded) isEvent() {}
func (SynthesisFailed) isEvent()    {}
