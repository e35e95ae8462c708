package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const wrapAt = 78

var keywordStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

func keyword(s string) string {
	return keywordStyle.Render(s)
}

func paragraph(s string) string {
	return strings.TrimRight(indent.String(wordwrap.String(s, wrapAt), 2), "\n")
}
