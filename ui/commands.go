package ui

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/locallab/voicestudio/api"
	"github.com/locallab/voicestudio/studio"
	"github.com/locallab/voicestudio/studio/audio"
)

// Messages produced by async commands.

type voicesLoadedMsg struct {
	def    string
	voices map[string]studio.Voice
	err    error
}

type systemStatusMsg struct {
	status studio.HardwareStatus
	err    error
}

type synthesisDoneMsg struct {
	seq    uint64
	voice  string
	resp   api.SynthesizeResponse
	err    error
}

type playbackStartedMsg struct {
	err error
}

type artifactSavedMsg struct {
	path string
	size int
	err  error
}

type linkCopiedMsg struct {
	link string
	err  error
}

type noticeExpiredMsg struct{}

// noticeTimeout is how long a transient status message stays visible.
const noticeTimeout = 3 * time.Second

// requestTimeout bounds the short metadata calls; synthesis uses the client's
// own generous timeout.
const requestTimeout = 10 * time.Second

func fetchVoicesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := client.Voices(ctx)
		if err != nil {
			return voicesLoadedMsg{err: err}
		}
		voices := make(map[string]studio.Voice, len(resp.Voices))
		for id, info := range resp.Voices {
			voices[id] = studio.Voice{
				ID:     id,
				Name:   info.Name,
				Gender: info.Gender,
				Accent: info.Accent,
				Style:  info.Style,
				Lang:   info.Lang,
			}
		}
		return voicesLoadedMsg{def: resp.Default, voices: voices}
	}
}

// fetchSystemStatusCmd runs the one-shot hardware check. It fails soft: a
// transport error leaves the status unknown and the rest of the UI proceeds.
func fetchSystemStatusCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		status, err := client.System(ctx)
		if err != nil {
			log.Warn("hardware check failed", "err", err)
			return systemStatusMsg{err: err}
		}
		return systemStatusMsg{status: studio.HardwareStatus{
			Platform:  status.Platform,
			CanRunPro: status.CanRunPro,
			Message:   status.Message,
			Known:     true,
		}}
	}
}

func synthesizeCmd(client *api.Client, eff studio.StartSynthesis) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Synthesize(context.Background(), api.SynthesizeRequest{
			Text:   eff.Text,
			Voice:  eff.Voice,
			Speed:  eff.Speed,
			Format: string(studio.FormatWAV),
			Model:  eff.Mode.APIModel(),
		})
		return synthesisDoneMsg{seq: eff.Seq, voice: eff.Voice, resp: resp, err: err}
	}
}

func playArtifactCmd(client *api.Client, player audio.Player, locator string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.Fetch(context.Background(), locator)
		if err != nil {
			return playbackStartedMsg{err: err}
		}
		clip, err := audio.Decode(data)
		if err != nil {
			return playbackStartedMsg{err: err}
		}
		return playbackStartedMsg{err: player.Play(clip)}
	}
}

func saveArtifactCmd(client *api.Client, downloadDir string, eff studio.SaveArtifact) tea.Cmd {
	return func() tea.Msg {
		data, err := client.Fetch(context.Background(), eff.URL)
		if err != nil {
			return artifactSavedMsg{err: err}
		}

		name := path.Base(eff.URL)
		if name == "." || name == "/" {
			name = "voicestudio-output." + string(eff.Format)
		}
		dest := filepath.Join(downloadDir, name)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return artifactSavedMsg{err: err}
		}
		return artifactSavedMsg{path: dest, size: len(data)}
	}
}

func copyLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		// OSC52 for terminals that support it, plus the system clipboard.
		termenv.Copy(link)
		if clipboard.Unsupported {
			// OSC52 already made a best effort; don't fail the operation.
			return linkCopiedMsg{link: link}
		}
		return linkCopiedMsg{link: link, err: clipboard.WriteAll(link)}
	}
}

// discardArtifactCmd deletes a superseded file server-side. Best-effort:
// failures are logged, never surfaced.
func discardArtifactCmd(client *api.Client, locator string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteAudio(ctx, path.Base(locator)); err != nil {
			log.Debug("artifact delete failed", "locator", locator, "err", err)
		}
		return nil
	}
}

func noticeTimeoutCmd() tea.Cmd {
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}
