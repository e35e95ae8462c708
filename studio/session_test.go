package studio

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func testVoices() map[string]Voice {
	return map[string]Voice{
		"af_heart":   {ID: "af_heart", Name: "Heart", Gender: "female", Accent: "american"},
		"am_michael": {ID: "am_michael", Name: "Michael", Gender: "male", Accent: "american"},
		"bf_emma":    {ID: "bf_emma", Name: "Emma", Gender: "female", Accent: "british"},
	}
}

// newLoadedSession returns a session with the catalog loaded and the
// server default selected.
func newLoadedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if fx := s.Update(VoicesLoaded{Default: "af_heart", Voices: testVoices()}); fx != nil {
		t.Fatalf("VoicesLoaded returned effects: %v", fx)
	}
	if s.VoiceID() != "af_heart" {
		t.Fatalf("default voice = %q, want af_heart", s.VoiceID())
	}
	return s
}

// submit drives a session into the generating state.
func submit(t *testing.T, s *Session, text string) StartSynthesis {
	t.Helper()
	fx := s.Update(SubmitRequested{Text: text})
	if len(fx) != 2 {
		t.Fatalf("submit effects = %v, want [StopPlayback StartSynthesis]", fx)
	}
	if _, ok := fx[0].(StopPlayback); !ok {
		t.Fatalf("first submit effect = %T, want StopPlayback", fx[0])
	}
	start, ok := fx[1].(StartSynthesis)
	if !ok {
		t.Fatalf("second submit effect = %T, want StartSynthesis", fx[1])
	}
	return start
}

func findNotify(fx []Effect) (Notify, bool) {
	for _, eff := range fx {
		if n, ok := eff.(Notify); ok {
			return n, true
		}
	}
	return Notify{}, false
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"empty", "", ErrEmptyText},
		{"whitespace only", "  \n\t ", ErrEmptyText},
		{"too long", strings.Repeat("a", MaxTextLen+1), ErrTextTooLong},
		{"at limit", strings.Repeat("a", MaxTextLen), nil},
		{"multibyte runes count once", strings.Repeat("ü", MaxTextLen), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLoadedSession(t)
			fx := s.Update(SubmitRequested{Text: tt.text})

			if tt.wantErr == nil {
				if s.State() != StateGenerating {
					t.Fatalf("state = %v, want generating", s.State())
				}
				return
			}

			// Rejected locally: one notification, no request, no state change.
			if s.State() != StateIdle {
				t.Errorf("state = %v, want idle", s.State())
			}
			for _, eff := range fx {
				if _, ok := eff.(StartSynthesis); ok {
					t.Error("invalid text produced a StartSynthesis effect")
				}
			}
			n, ok := findNotify(fx)
			if !ok {
				t.Fatal("no notification for invalid text")
			}
			if !n.IsError || n.Text != tt.wantErr.Error() {
				t.Errorf("notify = %+v, want error %q", n, tt.wantErr)
			}
		})
	}
}

func TestSubmitWithoutKnownVoice(t *testing.T) {
	s := NewSession()
	fx := s.Update(SubmitRequested{Text: "hello"})

	n, ok := findNotify(fx)
	if !ok {
		t.Fatal("no notification for unknown voice")
	}
	if n.Text != ErrUnknownVoice.Error() {
		t.Errorf("notify text = %q, want %q", n.Text, ErrUnknownVoice)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestSubmitCarriesSessionParameters(t *testing.T) {
	s := newLoadedSession(t)
	s.Update(VoiceSelected{ID: "am_michael"})
	s.Update(SpeedChanged{Speed: 1.5})

	start := submit(t, s, "hello world")
	if start.Voice != "am_michael" {
		t.Errorf("start.Voice = %q, want am_michael", start.Voice)
	}
	if start.Speed != 1.5 {
		t.Errorf("start.Speed = %v, want 1.5", start.Speed)
	}
	if start.Mode != ModeStandard {
		t.Errorf("start.Mode = %q, want standard", start.Mode)
	}
	if start.Seq != 1 {
		t.Errorf("start.Seq = %d, want 1", start.Seq)
	}
}

func TestSubmitWhileGeneratingIsNoOp(t *testing.T) {
	s := newLoadedSession(t)
	first := submit(t, s, "first")

	fx := s.Update(SubmitRequested{Text: "second"})
	if fx != nil {
		t.Errorf("second submit returned effects: %v", fx)
	}
	if s.State() != StateGenerating {
		t.Errorf("state = %v, want generating", s.State())
	}

	// The in-flight request was not superseded.
	done := s.Update(SynthesisSucceeded{Seq: first.Seq, Result: GenerationResult{AudioURL: "/api/audio/a.wav", Voice: "af_heart"}})
	if len(done) == 0 {
		t.Error("original request's result was discarded")
	}
}

func TestSubmitClearsPreviousArtifact(t *testing.T) {
	s := newLoadedSession(t)
	start := submit(t, s, "one")
	s.Update(SynthesisSucceeded{Seq: start.Seq, Result: GenerationResult{AudioURL: "/api/audio/a.wav"}})

	submit(t, s, "two")
	if _, ok := s.Artifacts().Current(); ok {
		t.Error("previous artifact still current during new generation")
	}
}

func TestSynthesisSuccess(t *testing.T) {
	s := newLoadedSession(t)
	start := submit(t, s, "hello")

	result := GenerationResult{
		AudioURL: "/api/audio/tts_123.wav",
		MP3URL:   "/api/audio/tts_123.mp3",
		Seconds:  2.4,
		Voice:    "af_heart",
	}
	fx := s.Update(SynthesisSucceeded{Seq: start.Seq, Result: result})

	if s.State() != StateReady {
		t.Fatalf("state = %v, want ready", s.State())
	}
	got, ok := s.Artifacts().Current()
	if !ok {
		t.Fatal("no current artifact after success")
	}
	if got != result {
		t.Errorf("current artifact = %+v, want %+v", got, result)
	}

	// Playback starts automatically and the user is told the duration.
	if len(fx) != 2 {
		t.Fatalf("effects = %v, want [PlayArtifact Notify]", fx)
	}
	play, ok := fx[0].(PlayArtifact)
	if !ok || play.URL != result.AudioURL {
		t.Errorf("first effect = %#v, want PlayArtifact for %q", fx[0], result.AudioURL)
	}
	n, ok := fx[1].(Notify)
	if !ok || n.IsError {
		t.Fatalf("second effect = %#v, want non-error Notify", fx[1])
	}
	if !strings.Contains(n.Text, "2.4") {
		t.Errorf("notify text = %q, want duration mentioned", n.Text)
	}
}

func TestSynthesisFailure(t *testing.T) {
	s := newLoadedSession(t)
	start := submit(t, s, "hello")

	fx := s.Update(SynthesisFailed{Seq: start.Seq, Detail: "TTS engine exploded", Err: errors.New("http 500")})

	if s.State() != StateFailed {
		t.Fatalf("state = %v, want failed", s.State())
	}
	if _, ok := s.Artifacts().Current(); ok {
		t.Error("artifact still current after failure")
	}
	n, ok := findNotify(fx)
	if !ok {
		t.Fatal("no notification for failure")
	}
	if !n.IsError || n.Text != "TTS engine exploded" {
		t.Errorf("notify = %+v, want server detail", n)
	}

	// The failed state accepts a retry.
	submit(t, s, "again")
	if s.State() != StateGenerating {
		t.Errorf("state after retry = %v, want generating", s.State())
	}
}

func TestSynthesisFailureWithoutDetail(t *testing.T) {
	s := newLoadedSession(t)
	start := submit(t, s, "hello")

	fx := s.Update(SynthesisFailed{Seq: start.Seq, Err: errors.New("connection refused")})
	n, ok := findNotify(fx)
	if !ok {
		t.Fatal("no notification for failure")
	}
	if n.Text != "Generation failed" {
		t.Errorf("notify text = %q, want generic fallback", n.Text)
	}
}

func TestLateArrivalIsDiscarded(t *testing.T) {
	s := newLoadedSession(t)
	first := submit(t, s, "first")
	s.Update(SynthesisFailed{Seq: first.Seq, Detail: "timeout"})
	second := submit(t, s, "second")

	// The first request's result straggles in after the second started.
	fx := s.Update(SynthesisSucceeded{Seq: first.Seq, Result: GenerationResult{AudioURL: "/api/audio/old.wav"}})
	if fx != nil {
		t.Errorf("stale success returned effects: %v", fx)
	}
	if s.State() != StateGenerating {
		t.Errorf("state = %v, want generating", s.State())
	}
	if _, ok := s.Artifacts().Current(); ok {
		t.Error("stale result was installed as current artifact")
	}

	// The current request still completes normally.
	s.Update(SynthesisSucceeded{Seq: second.Seq, Result: GenerationResult{AudioURL: "/api/audio/new.wav"}})
	got, ok := s.Artifacts().Current()
	if !ok || got.AudioURL != "/api/audio/new.wav" {
		t.Errorf("current artifact = %+v, want the second result", got)
	}
}

func TestStaleFailureIsDiscarded(t *testing.T) {
	s := newLoadedSession(t)
	first := submit(t, s, "first")
	s.Update(SynthesisSucceeded{Seq: first.Seq, Result: GenerationResult{AudioURL: "/api/audio/a.wav"}})

	fx := s.Update(SynthesisFailed{Seq: first.Seq, Detail: "late error"})
	if fx != nil {
		t.Errorf("duplicate failure returned effects: %v", fx)
	}
	if s.State() != StateReady {
		t.Errorf("state = %v, want ready", s.State())
	}
}

func TestModeSelection(t *testing.T) {
	tests := []struct {
		name     string
		status   HardwareStatus
		wantMode Mode
		wantErr  bool
	}{
		{"ready gpu", HardwareStatus{Platform: PlatformGPUReady, CanRunPro: true, Message: "GPU ready", Known: true}, ModePremium, false},
		{"driver missing", HardwareStatus{Platform: PlatformDriverMissing, Message: "Install NVIDIA drivers to enable Pro", Known: true}, ModeStandard, true},
		{"cpu only", HardwareStatus{Platform: PlatformCPUOnly, Message: "CPU only", Known: true}, ModeStandard, true},
		{"status never loaded", HardwareStatus{}, ModeStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLoadedSession(t)
			if tt.status.Known {
				s.Update(SystemStatusLoaded{Status: tt.status})
			}
			fx := s.Update(ModeSelected{Mode: ModePremium})

			if s.Mode() != tt.wantMode {
				t.Errorf("mode = %q, want %q", s.Mode(), tt.wantMode)
			}
			n, notified := findNotify(fx)
			if notified != tt.wantErr {
				t.Fatalf("notified = %v, want %v (%v)", notified, tt.wantErr, fx)
			}
			if tt.wantErr && !n.IsError {
				t.Errorf("denial notify not marked as error: %+v", n)
			}
		})
	}
}

func TestModeDenialIncludesRemediationHint(t *testing.T) {
	s := newLoadedSession(t)
	s.Update(SystemStatusLoaded{Status: HardwareStatus{
		Platform: PlatformDriverMissing,
		Message:  "Install NVIDIA drivers to enable Pro",
		Known:    true,
	}})

	fx := s.Update(ModeSelected{Mode: ModePremium})
	n, ok := findNotify(fx)
	if !ok {
		t.Fatal("no denial notification")
	}
	if !strings.Contains(n.Text, "Install NVIDIA drivers") {
		t.Errorf("notify text = %q, want the server's remediation hint", n.Text)
	}
}

func TestSwitchBackToStandard(t *testing.T) {
	s := newLoadedSession(t)
	s.Update(SystemStatusLoaded{Status: HardwareStatus{Platform: PlatformGPUReady, CanRunPro: true, Known: true}})
	s.Update(ModeSelected{Mode: ModePremium})
	if s.Mode() != ModePremium {
		t.Fatalf("mode = %q, want premium", s.Mode())
	}

	fx := s.Update(ModeSelected{Mode: ModeStandard})
	if fx != nil {
		t.Errorf("standard selection returned effects: %v", fx)
	}
	if s.Mode() != ModeStandard {
		t.Errorf("mode = %q, want standard", s.Mode())
	}
}

func TestSpeedChangeClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.3, 1.3},
		{3.0, MaxSpeed},
		{0.1, MinSpeed},
		{-1, MinSpeed},
	}

	for _, tt := range tests {
		s := NewSession()
		s.Update(SpeedChanged{Speed: tt.in})
		if s.Speed() != tt.want {
			t.Errorf("speed after SpeedChanged{%v} = %v, want %v", tt.in, s.Speed(), tt.want)
		}
	}
}

func TestVoiceSelection(t *testing.T) {
	s := newLoadedSession(t)

	s.Update(VoiceSelected{ID: "bf_emma"})
	if s.VoiceID() != "bf_emma" {
		t.Errorf("voice = %q, want bf_emma", s.VoiceID())
	}

	// Unknown ids are ignored, not installed.
	s.Update(VoiceSelected{ID: "nope"})
	if s.VoiceID() != "bf_emma" {
		t.Errorf("voice after unknown selection = %q, want bf_emma", s.VoiceID())
	}
}

func TestVoicesReloadDropsVanishedSelection(t *testing.T) {
	s := newLoadedSession(t)
	s.Update(VoiceSelected{ID: "bf_emma"})

	s.Update(VoicesLoaded{Default: "am_michael", Voices: map[string]Voice{
		"am_michael": {ID: "am_michael", Name: "Michael"},
	}})
	if s.VoiceID() != "am_michael" {
		t.Errorf("voice after reload = %q, want the new default", s.VoiceID())
	}
}

func TestVoicesSorted(t *testing.T) {
	s := newLoadedSession(t)
	voices := s.Voices()
	want := []string{"af_heart", "am_michael", "bf_emma"}
	if len(voices) != len(want) {
		t.Fatalf("len(Voices()) = %d, want %d", len(voices), len(want))
	}
	for i, id := range want {
		if voices[i].ID != id {
			t.Errorf("Voices()[%d].ID = %q, want %q", i, voices[i].ID, id)
		}
	}
}

func TestDownload(t *testing.T) {
	s := newLoadedSession(t)

	// Nothing generated yet.
	fx := s.Download(FormatWAV)
	if n, ok := findNotify(fx); !ok || n.Text != ErrNoArtifact.Error() {
		t.Errorf("download without artifact = %v, want ErrNoArtifact notify", fx)
	}

	start := submit(t, s, "hello")
	s.Update(SynthesisSucceeded{Seq: start.Seq, Result: GenerationResult{AudioURL: "/api/audio/a.wav"}})

	fx = s.Download(FormatWAV)
	if len(fx) != 1 {
		t.Fatalf("effects = %v, want one SaveArtifact", fx)
	}
	save, ok := fx[0].(SaveArtifact)
	if !ok || save.URL != "/api/audio/a.wav" || save.Format != FormatWAV {
		t.Errorf("effect = %#v, want SaveArtifact for the wav locator", fx[0])
	}

	// No silent fallback to wav when mp3 was not produced.
	fx = s.Download(FormatMP3)
	if n, ok := findNotify(fx); !ok || n.Text != ErrFormatUnavailable.Error() {
		t.Errorf("mp3 download = %v, want ErrFormatUnavailable notify", fx)
	}
}

func TestCopyLink(t *testing.T) {
	base, _ := url.Parse("http://127.0.0.1:8000")
	s := newLoadedSession(t)

	fx := s.CopyLink(base)
	if n, ok := findNotify(fx); !ok || !n.IsError {
		t.Errorf("copy without artifact = %v, want error notify", fx)
	}

	start := submit(t, s, "hello")
	s.Update(SynthesisSucceeded{Seq: start.Seq, Result: GenerationResult{AudioURL: "/api/audio/a.wav"}})

	fx = s.CopyLink(base)
	if len(fx) != 1 {
		t.Fatalf("effects = %v, want one SetClipboard", fx)
	}
	clip, ok := fx[0].(SetClipboard)
	if !ok {
		t.Fatalf("effect = %#v, want SetClipboard", fx[0])
	}
	if clip.Link != "http://127.0.0.1:8000/api/audio/a.wav" {
		t.Errorf("link = %q, want the absolute URL", clip.Link)
	}
}

func TestDiscard(t *testing.T) {
	s := newLoadedSession(t)

	if fx := s.Discard(); fx != nil {
		t.Errorf("discard without artifact returned effects: %v", fx)
	}

	start := submit(t, s, "hello")
	s.Update(SynthesisSucceeded{Seq: start.Seq, Result: GenerationResult{AudioURL: "/api/audio/a.wav"}})

	fx := s.Discard()
	if len(fx) != 2 {
		t.Fatalf("effects = %v, want [StopPlayback DiscardArtifact]", fx)
	}
	if _, ok := fx[0].(StopPlayback); !ok {
		t.Errorf("first effect = %T, want StopPlayback", fx[0])
	}
	del, ok := fx[1].(DiscardArtifact)
	if !ok || del.URL != "/api/audio/a.wav" {
		t.Errorf("second effect = %#v, want DiscardArtifact for the wav locator", fx[1])
	}
	if _, ok := s.Artifacts().Current(); ok {
		t.Error("artifact still current after discard")
	}
}
