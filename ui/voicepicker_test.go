package ui

import (
	"strings"
	"testing"

	"github.com/locallab/voicestudio/studio"
)

func pickerVoices() []studio.Voice {
	return []studio.Voice{
		{ID: "af_heart", Name: "Heart", Gender: "female", Accent: "american", Style: "warm"},
		{ID: "am_michael", Name: "Michael", Gender: "male", Accent: "american", Style: "calm"},
		{ID: "bf_emma", Name: "Emma", Gender: "female", Accent: "british", Style: "bright"},
	}
}

func TestPickerCursorStartsOnSelected(t *testing.T) {
	p := newPickerModel()
	p.setVoices(pickerVoices(), "am_michael")

	v, ok := p.cursorVoice()
	if !ok || v.ID != "am_michael" {
		t.Errorf("cursorVoice() = %+v, %v, want the selected voice", v, ok)
	}
}

func TestPickerCursorClamps(t *testing.T) {
	p := newPickerModel()
	p.setVoices(pickerVoices(), "af_heart")

	p.moveCursor(-5)
	if v, _ := p.cursorVoice(); v.ID != "af_heart" {
		t.Errorf("cursor after underflow = %q, want first voice", v.ID)
	}

	p.moveCursor(10)
	if v, _ := p.cursorVoice(); v.ID != "bf_emma" {
		t.Errorf("cursor after overflow = %q, want last voice", v.ID)
	}
}

func TestPickerFilter(t *testing.T) {
	p := newPickerModel()
	p.setVoices(pickerVoices(), "af_heart")

	p.setFilter("brit")
	if len(p.visible) != 1 {
		t.Fatalf("visible = %d entries, want 1", len(p.visible))
	}
	if v, _ := p.cursorVoice(); v.ID != "bf_emma" {
		t.Errorf("cursorVoice() = %q, want bf_emma", v.ID)
	}

	// Clearing the filter restores the full list.
	p.setFilter("")
	if len(p.visible) != 3 {
		t.Errorf("visible after clearing = %d, want 3", len(p.visible))
	}
}

func TestPickerFilterNoMatches(t *testing.T) {
	p := newPickerModel()
	p.setVoices(pickerVoices(), "af_heart")

	p.setFilter("zzzz")
	if len(p.visible) != 0 {
		t.Fatalf("visible = %d entries, want 0", len(p.visible))
	}
	if _, ok := p.cursorVoice(); ok {
		t.Error("cursorVoice() reported a voice on an empty listing")
	}
	if view := p.view(true); !strings.Contains(view, "no voices match") {
		t.Errorf("view missing empty-state hint:\n%s", view)
	}
}

func TestPickerViewMarksSelection(t *testing.T) {
	p := newPickerModel()
	p.setVoices(pickerVoices(), "bf_emma")

	view := p.view(false)
	if !strings.Contains(view, "✔") {
		t.Errorf("view missing selection marker:\n%s", view)
	}
	if !strings.Contains(view, "Emma") {
		t.Errorf("view missing voice name:\n%s", view)
	}
}
