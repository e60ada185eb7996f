package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tubegrow/clipforge/internal/editor"
	"github.com/tubegrow/clipforge/internal/models"
)

// candidatesFetchedMsg carries the suggestion sync result into the Update loop.
type candidatesFetchedMsg struct {
	candidates []models.ClipCandidate
	err        error
}

// surfaceEventMsg carries one playback surface event; closed reports a drained channel.
type surfaceEventMsg struct {
	event  editor.Event
	closed bool
}

// tickMsg drives playhead polling while an editor is open.
type tickMsg time.Time

// jobSubmittedMsg carries the render submission result.
type jobSubmittedMsg struct {
	job *models.RenderJob
	err error
}

var (
	_ tea.Msg = candidatesFetchedMsg{}
	_ tea.Msg = surfaceEventMsg{}
	_ tea.Msg = tickMsg{}
	_ tea.Msg = jobSubmittedMsg{}
)
