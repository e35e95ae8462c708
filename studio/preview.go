package studio

import (
	"sync"
	"time"
)

// DefaultPreviewDelay is the debounce window between a hover intent and the
// preview fetch. It exists so that skimming the pointer across the voice list
// does not fire a network request per voice.
const DefaultPreviewDelay = 300 * time.Millisecond

// PreviewController debounces hover-like intent signals into at most one
// audible preview session. Every Request supersedes the previous one:
// pending timers are canceled and audible playback is stopped before a new
// session is scheduled (last-write-wins). Preview failures are best-effort
// and never surface to the user.
type PreviewController struct {
	mu      sync.Mutex
	sched   Scheduler
	delay   time.Duration
	pending Task
	session uint64

	// onFire is called once the debounce window elapses without a newer
	// intent; it should fetch and play the sample, checking IsCurrent with
	// the given session before any audio starts.
	onFire func(voiceID string, session uint64)
	// onStop stops whatever preview audio is currently audible.
	onStop func()
}

// NewPreviewController creates a preview controller. onFire runs after the
// debounce delay; onStop is invoked synchronously whenever a session is
// superseded or canceled. Either callback may be nil.
func NewPreviewController(sched Scheduler, delay time.Duration, onFire func(voiceID string, session uint64), onStop func()) *PreviewController {
	if delay <= 0 {
		delay = DefaultPreviewDelay
	}
	return &PreviewController{
		sched:  sched,
		delay:  delay,
		onFire: onFire,
		onStop: onStop,
	}
}

// Request schedules a preview of the given voice after the debounce window,
// superseding any pending or audible preview.
func (p *PreviewController) Request(voiceID string) {
	p.mu.Lock()
	p.supersedeLocked()
	session := p.session
	p.pending = p.sched.AfterFunc(p.delay, func() {
		p.fire(voiceID, session)
	})
	p.mu.Unlock()
}

// Cancel withdraws the current intent: a pending timer never fires and any
// audible preview is stopped.
func (p *PreviewController) Cancel() {
	p.mu.Lock()
	p.supersedeLocked()
	p.mu.Unlock()
}

// IsCurrent reports whether the given session is still the latest. Fetched
// samples whose session has gone stale must be discarded without playing.
func (p *PreviewController) IsCurrent(session uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return session == p.session
}

// supersedeLocked invalidates the previous session. Callers hold p.mu.
func (p *PreviewController) supersedeLocked() {
	p.session++
	if p.pending != nil {
		p.pending.Cancel()
		p.pending = nil
	}
	if p.onStop != nil {
		p.onStop()
	}
}

func (p *PreviewController) fire(voiceID string, session uint64) {
	p.mu.Lock()
	if session != p.session {
		p.mu.Unlock()
		return
	}
	p.pending = nil
	p.mu.Unlock()

	if p.onFire != nil {
		p.onFire(voiceID, session)
	}
}
