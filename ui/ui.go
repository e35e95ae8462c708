// Package ui provides the terminal UI for Voice Studio.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/locallab/voicestudio/api"
	"github.com/locallab/voicestudio/studio"
	"github.com/locallab/voicestudio/studio/audio"
)

const ellipsis = "…"

// focusArea is which pane receives keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusPicker
)

// Model is the top-level Bubble Tea model.
type Model struct {
	cfg    Config
	client *api.Client

	// Orchestration core.
	session *studio.Session
	notices *studio.NoticeQueue
	preview *studio.PreviewController

	// Audio output channels: primary playback and previews are independent
	// and may play concurrently.
	primary    audio.Player
	previewOut audio.Player

	// Widgets.
	input  textarea.Model
	picker pickerModel
	spin   spinner.Model

	focus  focusArea
	notice *studio.Notice

	width  int
	height int
}

// NewProgram returns a new Tea program running the Voice Studio UI.
func NewProgram(cfg Config) (*tea.Program, error) {
	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		return nil, err
	}
	m, err := newModel(cfg, client)
	if err != nil {
		return nil, err
	}
	return tea.NewProgram(m, tea.WithAltScreen()), nil
}

func newModel(cfg Config, client *api.Client) (*Model, error) {
	var primary, previewOut audio.Player
	if cfg.MockAudio {
		log.Debug("using mock audio players")
		primary = audio.NewMockPlayer()
		previewOut = audio.NewMockPlayer()
	} else {
		primary = audio.NewOtoPlayer()
		previewOut = audio.NewOtoPlayer()
	}

	input := textarea.New()
	input.Placeholder = "Type or paste the text to narrate…"
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	session := studio.NewSession()
	if cfg.Speed != 0 {
		session.Update(studio.SpeedChanged{Speed: cfg.Speed})
	}

	m := &Model{
		cfg:        cfg,
		client:     client,
		session:    session,
		notices:    studio.NewNoticeQueue(0),
		primary:    primary,
		previewOut: previewOut,
		input:      input,
		picker:     newPickerModel(),
		spin:       spin,
	}

	delay := time.Duration(cfg.PreviewDelayMS) * time.Millisecond
	m.preview = studio.NewPreviewController(
		studio.NewTimerScheduler(),
		delay,
		m.firePreview,
		previewOut.Stop,
	)
	return m, nil
}

// firePreview runs once the debounce window elapses. Previews are
// fire-and-forget: every failure is swallowed, and a sample whose session
// went stale during the fetch is discarded before any audio starts.
func (m *Model) firePreview(voiceID string, session uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, err := m.client.Preview(ctx, voiceID)
		if err != nil {
			log.Debug("preview fetch failed", "voice", voiceID, "err", err)
			return
		}
		if !m.preview.IsCurrent(session) {
			return
		}
		clip, err := audio.Decode(data)
		if err != nil {
			log.Debug("preview decode failed", "voice", voiceID, "err", err)
			return
		}
		m.previewOut.Stop()
		if !m.preview.IsCurrent(session) {
			return
		}
		if err := m.previewOut.Play(clip); err != nil {
			log.Debug("preview playback failed", "voice", voiceID, "err", err)
		}
	}()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		fetchVoicesCmd(m.client),
		fetchSystemStatusCmd(m.client),
		textarea.Blink,
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case voicesLoadedMsg:
		if msg.err != nil {
			m.pushNotice(studio.Notice{Text: "Could not load voices: " + msg.err.Error(), IsError: true}, &cmds)
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.execEffects(m.session.Update(studio.VoicesLoaded{
			Default: msg.def,
			Voices:  msg.voices,
		})))
		if m.cfg.Voice != "" {
			m.session.Update(studio.VoiceSelected{ID: m.cfg.Voice})
		}
		m.picker.setVoices(m.session.Voices(), m.session.VoiceID())
		return m, tea.Batch(cmds...)

	case systemStatusMsg:
		if msg.err != nil {
			// Fail soft: status stays unknown and premium stays gated off.
			return m, nil
		}
		cmds = append(cmds, m.execEffects(m.session.Update(studio.SystemStatusLoaded{Status: msg.status})))
		if m.cfg.Mode == string(studio.ModePremium) {
			cmds = append(cmds, m.execEffects(m.session.Update(studio.ModeSelected{Mode: studio.ModePremium})))
		}
		return m, tea.Batch(cmds...)

	case synthesisDoneMsg:
		return m, m.execEffects(m.session.Update(m.synthesisEvent(msg)))

	case playbackStartedMsg:
		if msg.err != nil {
			m.pushNotice(studio.Notice{Text: "Playback failed: " + msg.err.Error(), IsError: true}, &cmds)
		}
		return m, tea.Batch(cmds...)

	case artifactSavedMsg:
		if msg.err != nil {
			m.pushNotice(studio.Notice{Text: "Download failed: " + msg.err.Error(), IsError: true}, &cmds)
		} else {
			m.pushNotice(studio.Notice{Text: fmt.Sprintf("Saved %s (%s)", msg.path, humanize.Bytes(uint64(msg.size)))}, &cmds)
		}
		return m, tea.Batch(cmds...)

	case linkCopiedMsg:
		if msg.err != nil {
			m.pushNotice(studio.Notice{Text: "Copy failed: " + msg.err.Error(), IsError: true}, &cmds)
		} else {
			m.pushNotice(studio.Notice{Text: "Link copied"}, &cmds)
		}
		return m, tea.Batch(cmds...)

	case noticeExpiredMsg:
		m.notice = nil
		if next, ok := m.notices.Pop(); ok {
			m.notice = &next
			return m, noticeTimeoutCmd()
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.Generating() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// synthesisEvent converts a completed synthesis call into a reducer event.
func (m *Model) synthesisEvent(msg synthesisDoneMsg) studio.Event {
	if msg.err != nil {
		detail := ""
		if serr, ok := msg.err.(*api.StatusError); ok {
			detail = serr.Detail
		}
		return studio.SynthesisFailed{Seq: msg.seq, Detail: detail, Err: msg.err}
	}
	return studio.SynthesisSucceeded{
		Seq: msg.seq,
		Result: studio.GenerationResult{
			AudioURL: msg.resp.AudioURL,
			MP3URL:   msg.resp.AudioURLMP3,
			Seconds:  msg.resp.Duration,
			Voice:    msg.voice,
		},
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Global bindings, independent of focus.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == focusInput {
			m.focus = focusPicker
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.preview.Cancel()
			cmds = append(cmds, m.input.Focus())
		}
		return m, tea.Batch(cmds...)
	case "ctrl+s":
		cmds = append(cmds, m.execEffects(m.session.Update(studio.SubmitRequested{Text: m.input.Value()})))
		if m.session.Generating() {
			cmds = append(cmds, m.spin.Tick)
		}
		return m, tea.Batch(cmds...)
	case "ctrl+p":
		return m, m.toggleMode()
	case "ctrl+d":
		return m, m.execEffects(m.session.Download(studio.FormatWAV))
	case "ctrl+o":
		return m, m.execEffects(m.session.Download(studio.FormatMP3))
	case "ctrl+y":
		return m, m.execEffects(m.session.CopyLink(m.client.BaseURL()))
	case "ctrl+x":
		return m, m.execEffects(m.session.Discard())
	case "ctrl+r":
		if result, ok := m.session.Artifacts().Current(); ok {
			return m, playArtifactCmd(m.client, m.primary, result.AudioURL)
		}
		return m, nil
	}

	if m.focus == focusPicker {
		return m.handlePickerKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePickerKey drives the voice list. Cursor movement is the hover-intent
// signal: each move requests a debounced preview of the voice under the
// cursor, superseding the previous one.
func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.picker.moveCursor(-1)
		m.requestCursorPreview()
	case "down", "j":
		m.picker.moveCursor(1)
		m.requestCursorPreview()
	case "enter":
		if v, ok := m.picker.cursorVoice(); ok {
			m.session.Update(studio.VoiceSelected{ID: v.ID})
			m.picker.selected = m.session.VoiceID()
		}
		m.preview.Cancel()
	case "esc":
		if m.picker.filter != "" {
			m.picker.setFilter("")
		}
		m.preview.Cancel()
	case "q":
		if m.picker.filter == "" {
			return m, tea.Quit
		}
		m.picker.setFilter(m.picker.filter + "q")
	case "+", "=":
		m.session.Update(studio.SpeedChanged{Speed: m.session.Speed() + studio.SpeedStep})
	case "-", "_":
		m.session.Update(studio.SpeedChanged{Speed: m.session.Speed() - studio.SpeedStep})
	case "backspace":
		if f := m.picker.filter; f != "" {
			m.picker.setFilter(f[:len(f)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.picker.setFilter(m.picker.filter + string(msg.Runes))
		}
	}
	return m, nil
}

func (m *Model) requestCursorPreview() {
	if v, ok := m.picker.cursorVoice(); ok {
		m.preview.Request(v.ID)
	}
}

func (m *Model) toggleMode() tea.Cmd {
	next := studio.ModePremium
	if m.session.Mode() == studio.ModePremium {
		next = studio.ModeStandard
	}
	return m.execEffects(m.session.Update(studio.ModeSelected{Mode: next}))
}

// execEffects executes the side effects the reducer returned.
func (m *Model) execEffects(effects []studio.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case studio.StartSynthesis:
			cmds = append(cmds, synthesizeCmd(m.client, eff))
		case studio.PlayArtifact:
			cmds = append(cmds, playArtifactCmd(m.client, m.primary, eff.URL))
		case studio.StopPlayback:
			m.primary.Stop()
		case studio.Notify:
			m.pushNotice(studio.Notice{Text: eff.Text, IsError: eff.IsError}, &cmds)
		case studio.SetClipboard:
			cmds = append(cmds, copyLinkCmd(eff.Link))
		case studio.SaveArtifact:
			cmds = append(cmds, saveArtifactCmd(m.client, m.cfg.DownloadDir, eff))
		case studio.DiscardArtifact:
			cmds = append(cmds, discardArtifactCmd(m.client, eff.URL))
		}
	}
	return tea.Batch(cmds...)
}

// pushNotice queues a notice and starts the display timer when idle.
func (m *Model) pushNotice(n studio.Notice, cmds *[]tea.Cmd) {
	m.notices.Push(n)
	if m.notice == nil {
		if next, ok := m.notices.Pop(); ok {
			m.notice = &next
			*cmds = append(*cmds, noticeTimeoutCmd())
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	inputPane := paneBorderStyle
	pickerPane := paneBorderStyle
	if m.focus == focusInput {
		inputPane = paneFocusedStyle
	} else {
		pickerPane = paneFocusedStyle
	}
	b.WriteString(inputPane.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(pickerPane.Render(m.picker.view(m.focus == focusPicker)))
	b.WriteString("\n")

	b.WriteString(m.playerView())
	b.WriteString("\n")
	b.WriteString(m.statusBarView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab focus · ctrl+s generate · ↑/↓ preview voices · +/- speed · ctrl+p pro · ctrl+d/o save wav/mp3 · ctrl+y copy · ctrl+c quit"))
	return b.String()
}

func (m *Model) headerView() string {
	title := titleStyle.Render("Voice Studio")
	banner := m.hardwareBanner()
	if banner == "" {
		return title
	}
	return title + "  " + banner
}

func (m *Model) hardwareBanner() string {
	status := m.session.Status()
	switch status.Classify() {
	case studio.CapabilityReady:
		return bannerReadyStyle.Render(status.Message)
	case studio.CapabilityDriverMissing:
		return bannerWarnStyle.Render(status.Message)
	case studio.CapabilityNone:
		return bannerMutedStyle.Render(status.Message)
	default:
		return ""
	}
}

// playerView renders the loading affordance or the current artifact. A
// failed generation shows the same empty surface as before any generation.
func (m *Model) playerView() string {
	if m.session.Generating() {
		return playerBarStyle.Render(m.spin.View() + " Generating…")
	}
	result, ok := m.session.Artifacts().Current()
	if !ok {
		return bannerMutedStyle.Render("No audio yet.")
	}

	dur := result.Duration().Round(time.Second)
	parts := []string{
		fmt.Sprintf("▶ %s", dur),
		result.Voice,
		string(studio.FormatWAV),
	}
	if result.HasMP3() {
		parts = append(parts, "+"+string(studio.FormatMP3))
	}
	return playerBarStyle.Render(strings.Join(parts, separatorStyle.Render(" │ ")))
}

func (m *Model) statusBarView() string {
	left := fmt.Sprintf(" %s · %s · %.1fx · %s ",
		m.session.State(), m.session.Mode(), m.session.Speed(), m.session.VoiceID())

	if m.notice != nil {
		style := statusOKStyle
		if m.notice.IsError {
			style = statusErrorStyle
		}
		text := m.notice.Text
		if m.width > 0 {
			text = truncate.StringWithTail(text, uint(max(0, m.width-len(left)-2)), ellipsis)
		}
		return statusBarStyle.Render(left) + style.Render(" "+text+" ")
	}
	return statusBarStyle.Render(left)
}
