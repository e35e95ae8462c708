package studio

// Effect is a side-effect descriptor returned by the reducer. The core never
// performs I/O itself; the UI layer executes effects against the HTTP client,
// audio output, clipboard, and filesystem.
type Effect interface {
	isEffect()
}

// StartSynthesis issues a synthesis request. Seq identifies the submission;
// the completion event must echo it back.
type StartSynthesis struct {
	Seq   uint64
	Text  string
	Voice string
	Speed float64
	Mode  Mode
}

// PlayArtifact begins playback of the given locator on the primary audio
// channel.
type PlayArtifact struct {
	URL string
}

// StopPlayback stops the primary audio channel.
type StopPlayback struct{}

// Notify queues a transient status message on the notification channel.
type Notify struct {
	Text    string
	IsError bool
}

// SetClipboard places an absolute artifact link on the system clipboard.
type SetClipboard struct {
	Link string
}

// SaveArtifact downloads the locator to a local file.
type SaveArtifact struct {
	URL    string
	Format Format
}

// DiscardArtifact deletes a superseded artifact server-side, best-effort.
type DiscardArtifact struct {
	URL string
}

func (StartSynthesis) isEffect()  {}
func (PlayArtifact) isEffect()    {}
func (StopPlayback) isEffect()    {}
func (Notify) isEffect()          {}
func (SetClipboard) isEffect()    {}
func (SaveArtifact) isEffect()    {}
func (DiscardArtifact) isEffect() {}
