package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/locallab/voicestudio/studio"
)

// pickerModel is the voice list: cursor movement is the hover-intent signal
// that drives previews, and typing filters the list fuzzily.
type pickerModel struct {
	voices   []studio.Voice
	visible  []int // indices into voices, after filtering
	cursor   int   // index into visible
	filter   string
	selected string // selected voice id
	height   int
}

func newPickerModel() pickerModel {
	return pickerModel{height: 8}
}

// setVoices replaces the listing wholesale and re-applies the filter.
func (p *pickerModel) setVoices(voices []studio.Voice, selected string) {
	p.voices = voices
	p.selected = selected
	p.applyFilter()
	p.moveCursorToSelected()
}

// cursorVoice returns the voice under the cursor.
func (p *pickerModel) cursorVoice() (studio.Voice, bool) {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return studio.Voice{}, false
	}
	return p.voices[p.visible[p.cursor]], true
}

func (p *pickerModel) moveCursor(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
}

func (p *pickerModel) moveCursorToSelected() {
	for i, vi := range p.visible {
		if p.voices[vi].ID == p.selected {
			p.cursor = i
			return
		}
	}
	p.cursor = 0
}

// setFilter updates the fuzzy filter string.
func (p *pickerModel) setFilter(filter string) {
	p.filter = filter
	p.applyFilter()
	if p.cursor >= len(p.visible) {
		p.cursor = max(0, len(p.visible)-1)
	}
}

func (p *pickerModel) applyFilter() {
	if strings.TrimSpace(p.filter) == "" {
		p.visible = make([]int, len(p.voices))
		for i := range p.voices {
			p.visible[i] = i
		}
		return
	}

	haystack := make([]string, len(p.voices))
	for i, v := range p.voices {
		haystack[i] = strings.Join([]string{v.ID, v.Name, v.Accent, v.Style, v.Gender}, " ")
	}
	matches := fuzzy.Find(p.filter, haystack)
	p.visible = p.visible[:0]
	for _, m := range matches {
		p.visible = append(p.visible, m.Index)
	}
}

// view renders the list with metadata columns, windowed around the cursor.
func (p *pickerModel) view(focused bool) string {
	var b strings.Builder

	prompt := "Filter: " + p.filter
	promptColor := lipgloss.Color("205")
	if !hasDarkBackground {
		promptColor = lipgloss.Color("162")
	}
	if p.filter != "" || focused {
		b.WriteString(lipgloss.NewStyle().Foreground(promptColor).Render(prompt))
		b.WriteString("\n")
	}

	start := 0
	if p.cursor >= p.height {
		start = p.cursor - p.height + 1
	}
	end := min(start+p.height, len(p.visible))

	for i := start; i < end; i++ {
		v := p.voices[p.visible[i]]

		marker := "  "
		if v.ID == p.selected {
			marker = "✔ "
		}
		name := runewidth.FillRight(v.Name, 10)
		meta := fmt.Sprintf("%s · %s · %s", v.Gender, v.Accent, v.Style)

		var row string
		if i == p.cursor && focused {
			row = cursorRowStyle.Render(fmt.Sprintf("> %s%s %s", strings.TrimLeft(marker, " "), name, meta))
		} else {
			row = fmt.Sprintf("%s%s %s", marker, name, voiceMetaStyle.Render(meta))
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(p.visible) == 0 {
		b.WriteString(bannerMutedStyle.Render("  no voices match"))
		b.WriteString("\n")
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
