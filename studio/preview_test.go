package studio

import (
	"sync"
	"testing"
	"time"
)

// previewRecorder captures controller callbacks.
type previewRecorder struct {
	mu    sync.Mutex
	fired []string
	stops int
}

func (r *previewRecorder) onFire(voiceID string, _ uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, voiceID)
}

func (r *previewRecorder) onStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
}

func (r *previewRecorder) firedVoices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.fired...)
}

func TestPreviewDebounce(t *testing.T) {
	clock := NewVirtualClock()
	rec := &previewRecorder{}
	pc := NewPreviewController(clock, DefaultPreviewDelay, rec.onFire, rec.onStop)

	pc.Request("af_heart")
	clock.Advance(100 * time.Millisecond)
	if got := rec.firedVoices(); len(got) != 0 {
		t.Fatalf("fired before the debounce window elapsed: %v", got)
	}

	clock.Advance(200 * time.Millisecond)
	if got := rec.firedVoices(); len(got) != 1 || got[0] != "af_heart" {
		t.Errorf("fired = %v, want [af_heart]", got)
	}
}

func TestPreviewLastWriteWins(t *testing.T) {
	clock := NewVirtualClock()
	rec := &previewRecorder{}
	pc := NewPreviewController(clock, DefaultPreviewDelay, rec.onFire, rec.onStop)

	// Skim across three voices inside one debounce window.
	pc.Request("af_heart")
	clock.Advance(100 * time.Millisecond)
	pc.Request("am_michael")
	clock.Advance(100 * time.Millisecond)
	pc.Request("bf_emma")
	clock.Advance(DefaultPreviewDelay)

	if got := rec.firedVoices(); len(got) != 1 || got[0] != "bf_emma" {
		t.Errorf("fired = %v, want only the last voice", got)
	}
}

func TestPreviewCancel(t *testing.T) {
	clock := NewVirtualClock()
	rec := &previewRecorder{}
	pc := NewPreviewController(clock, DefaultPreviewDelay, rec.onFire, rec.onStop)

	pc.Request("af_heart")
	pc.Cancel()
	clock.Advance(time.Second)

	if got := rec.firedVoices(); len(got) != 0 {
		t.Errorf("canceled preview fired: %v", got)
	}
	// Both the request and the cancel stop any audible preview.
	if rec.stops != 2 {
		t.Errorf("stops = %d, want 2", rec.stops)
	}
}

func TestPreviewSessionGoesStale(t *testing.T) {
	clock := NewVirtualClock()
	var gotSession uint64
	pc := NewPreviewController(clock, DefaultPreviewDelay, func(_ string, session uint64) {
		gotSession = session
	}, nil)

	pc.Request("af_heart")
	clock.Advance(DefaultPreviewDelay)
	if !pc.IsCurrent(gotSession) {
		t.Fatal("session stale immediately after firing")
	}

	// A new intent supersedes the fired session; a fetch still in flight
	// must observe that and discard its sample.
	pc.Request("am_michael")
	if pc.IsCurrent(gotSession) {
		t.Error("superseded session still reported current")
	}
}

func TestPreviewZeroDelayUsesDefault(t *testing.T) {
	pc := NewPreviewController(NewVirtualClock(), 0, nil, nil)
	if pc.delay != DefaultPreviewDelay {
		t.Errorf("delay = %v, want %v", pc.delay, DefaultPreviewDelay)
	}
}
