package ui

import (
	"strings"

	"github.com/tubegrow/clipforge/internal/editor"
)

const (
	trackRune    = '─'
	originalRune = '┄'
	selectedRune = '━'
	handleRune   = '┃'
	playheadRune = '▼'
)

// renderTimeline draws the scrub track for the editor view.
//
// Column i maps to the same time renderTimeline's caller passes to
// [editor.Editor.DragMove], so what the user clicks is what the editor
// computes.
func renderTimeline(ed *editor.Editor, width int) string {
	if width < 2 {
		width = 2
	}

	cells := make([]rune, width)
	kinds := make([]int, width)
	for i := range cells {
		cells[i] = trackRune
	}

	col := func(percent float64) int {
		i := int(percent / 100 * float64(width-1))
		if i < 0 {
			i = 0
		}
		if i >= width {
			i = width - 1
		}
		return i
	}

	origStart, origEnd := ed.OriginalRangePercent()
	for i := col(origStart); i <= col(origEnd); i++ {
		cells[i] = originalRune
		kinds[i] = 1
	}

	startCol, endCol := col(ed.StartPercent()), col(ed.EndPercent())
	for i := startCol; i <= endCol; i++ {
		cells[i] = selectedRune
		kinds[i] = 2
	}
	cells[startCol], kinds[startCol] = handleRune, 3
	cells[endCol], kinds[endCol] = handleRune, 3

	playCol := col(ed.PlayheadPercent())
	cells[playCol], kinds[playCol] = playheadRune, 4

	var b strings.Builder
	for i, r := range cells {
		s := string(r)
		switch kinds[i] {
		case 2:
			s = styles.selected.Render(s)
		case 3:
			s = styles.handle.Render(s)
		case 4:
			s = styles.playhead.Render(s)
		default:
			s = styles.track.Render(s)
		}
		b.WriteString(s)
	}
	return b.String()
}

// handleAt hit-tests a timeline column against the trim handles.
//
// A press within one cell of a handle grabs it; handles win over the
// playhead when the range is narrow enough for them to overlap.
func handleAt(ed *editor.Editor, x, width int) editor.Handle {
	if width < 2 {
		width = 2
	}
	col := func(percent float64) int {
		i := int(percent / 100 * float64(width-1))
		if i < 0 {
			i = 0
		}
		if i >= width {
			i = width - 1
		}
		return i
	}

	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}

	startCol, endCol := col(ed.StartPercent()), col(ed.EndPercent())
	startDist, endDist := abs(x-startCol), abs(x-endCol)

	if startDist <= 1 && startDist <= endDist {
		return editor.HandleStart
	}
	if endDist <= 1 {
		return editor.HandleEnd
	}
	return editor.HandlePlayhead
}
