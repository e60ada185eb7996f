package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

var (
	_ list.Item = candidateItem{}
)

// candidateItem wraps [models.ClipCandidate] to implement [list.Item].
type candidateItem struct {
	candidate models.ClipCandidate
}

func (i candidateItem) FilterValue() string { return i.candidate.Title }
func (i candidateItem) Title() string {
	title := i.candidate.Title
	if title == "" {
		title = "Untitled clip"
	}
	return fmt.Sprintf("%s (%.0f%%)", title, i.candidate.Score*100)
}
func (i candidateItem) Description() string {
	window := fmt.Sprintf("%s - %s (%.1fs)",
		shared.FormatTimecode(i.candidate.OriginalStart),
		shared.FormatTimecode(i.candidate.OriginalEnd),
		i.candidate.Duration(),
	)
	if i.candidate.Summary != "" {
		return fmt.Sprintf("%s • %s", window, i.candidate.Summary)
	}
	return window
}
