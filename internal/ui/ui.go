package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tubegrow/clipforge/internal/editor"
	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
	"github.com/tubegrow/clipforge/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CandidateListView ViewState = iota
	EditorView
	ResultView
)

// Playhead polling cadence while an editor is open.
const tickInterval = 200 * time.Millisecond

// Timeline geometry within the editor view. The track always renders at
// this row and indent so mouse hit-testing stays in sync with View output.
const (
	trackRow  = 4
	trackLeft = 2
)

// SurfaceFactory creates a playback surface for the given candidate's video.
type SurfaceFactory func(candidate models.ClipCandidate) (editor.Surface, error)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	engine     *tasks.ClipEngine
	newSurface SurfaceFactory
	videoID    string

	width  int
	height int

	candidateList list.Model
	candidates    []models.ClipCandidate

	ed         *editor.Editor
	surface    editor.Surface
	trackWidth int
	pending    *models.RenderRequest

	job *models.RenderJob
	err error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.ClipEngine, videoID string, newSurface SurfaceFactory) *Model {
	return &Model{
		ctx:        ctx,
		view:       CandidateListView,
		engine:     engine,
		newSurface: newSurface,
		videoID:    videoID,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by fetching clip suggestions.
func (m *Model) Init() tea.Cmd {
	return m.fetchCandidates()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trackWidth = m.width - trackLeft*2
		if m.trackWidth < 20 {
			m.trackWidth = 20
		}
		if m.candidateList.Width() == 0 {
			m.candidateList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CandidateListView:
			return m.handleCandidateListKeys(msg)
		case EditorView:
			return m.handleEditorKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case tea.MouseMsg:
		if m.view == EditorView {
			return m.handleEditorMouse(msg)
		}
		return m, nil

	case candidatesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.candidates = msg.candidates
		items := make([]list.Item, len(msg.candidates))
		for i, c := range msg.candidates {
			items[i] = candidateItem{candidate: c}
		}
		m.candidateList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.candidateList.Title = fmt.Sprintf("Clip Candidates for %s", m.videoID)
		m.candidateList.SetSize(m.width-4, m.height-8)
		return m, nil

	case surfaceEventMsg:
		if msg.closed || m.ed == nil {
			return m, nil
		}
		m.ed.HandleEvent(msg.event)
		if msg.event.Kind == editor.EventError {
			m.err = msg.event.Err
		}
		return m, m.waitForSurfaceEvent()

	case tickMsg:
		if m.ed == nil || m.ed.Closed() {
			return m, nil
		}
		m.ed.Tick()
		return m, m.tick()

	case jobSubmittedMsg:
		m.closeEditor()
		m.job = msg.job
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == CandidateListView {
		var cmd tea.Cmd
		m.candidateList, cmd = m.candidateList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView && m.view != EditorView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case CandidateListView:
		return m.renderCandidateList()
	case EditorView:
		return m.renderEditor()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleCandidateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.candidateList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(candidateItem); ok {
				return m.openEditor(item.candidate)
			}
		}
	}

	var cmd tea.Cmd
	m.candidateList, cmd = m.candidateList.Update(msg)
	return m, cmd
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.closeEditor()
		return m, tea.Quit
	case "esc":
		m.closeEditor()
		m.err = nil
		m.view = CandidateListView
		return m, nil
	case " ":
		m.ed.TogglePlay()
		return m, nil
	case "left", "h":
		m.ed.SeekRelative(-1)
		return m, nil
	case "right", "l":
		m.ed.SeekRelative(1)
		return m, nil
	case "s":
		m.ed.SetStartTime(m.ed.CurrentTime())
		return m, nil
	case "e":
		m.ed.SetEndTime(m.ed.CurrentTime())
		return m, nil
	case "a":
		m.ed.ToggleAspect()
		return m, nil
	case "r", "enter":
		m.ed.Submit()
		if m.pending != nil {
			req := *m.pending
			m.pending = nil
			return m, m.submitRender(req)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleEditorMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ed == nil {
		return m, nil
	}

	x := msg.X - trackLeft
	onTrack := msg.Y == trackRow && x >= 0 && x < m.trackWidth

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && onTrack {
			m.ed.DragStart(handleAt(m.ed, x, m.trackWidth))
			m.ed.DragMove(float64(x), float64(m.trackWidth))
		}
	case tea.MouseActionMotion:
		if m.ed.Dragging() != editor.HandleNone {
			m.ed.DragMove(float64(x), float64(m.trackWidth))
		}
	case tea.MouseActionRelease:
		m.ed.DragEnd()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "b", "esc":
		m.view = CandidateListView
		m.job = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) openEditor(candidate models.ClipCandidate) (tea.Model, tea.Cmd) {
	surface, err := m.newSurface(candidate)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.surface = surface
	m.ed = editor.New(candidate, surface, func(req models.RenderRequest) {
		r := req
		m.pending = &r
	})

	if err := m.ed.Attach(); err != nil {
		m.closeEditor()
		m.err = err
		return m, tea.Quit
	}

	m.view = EditorView
	return m, tea.Batch(m.waitForSurfaceEvent(), m.tick())
}

// closeEditor tears down the editor and its playback surface. Safe to call
// on every exit path; the editor ignores repeated closes.
func (m *Model) closeEditor() {
	if m.ed != nil {
		m.ed.Close()
		m.ed = nil
		m.surface = nil
	}
}

func (m *Model) fetchCandidates() tea.Cmd {
	return func() tea.Msg {
		candidates, err := m.engine.SyncSuggestions(m.ctx, nil, m.videoID)
		return candidatesFetchedMsg{candidates: candidates, err: err}
	}
}

func (m *Model) waitForSurfaceEvent() tea.Cmd {
	events := m.surface.Events()
	return func() tea.Msg {
		ev, ok := <-events
		return surfaceEventMsg{event: ev, closed: !ok}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) submitRender(req models.RenderRequest) tea.Cmd {
	return func() tea.Msg {
		job, err := m.engine.Submit(m.ctx, nil, req)
		return jobSubmittedMsg{job: job, err: err}
	}
}

func (m *Model) renderCandidateList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.candidateList.View(), helpView)
}

// renderEditor lays out the editor view with the timeline pinned at trackRow
// so mouse coordinates map directly onto the track.
func (m *Model) renderEditor() string {
	candidate := m.ed.Candidate()
	name := candidate.Title
	if name == "" {
		name = candidate.ID
	}
	title := styles.title.Render(fmt.Sprintf("Trimming '%s'", name))

	var status string
	if !m.ed.Ready() {
		status = styles.warn.Render("Loading preview...")
	} else {
		play := "paused"
		if m.ed.Playing() {
			play = "playing"
		}
		status = fmt.Sprintf("%s - %s  (%.1fs)  @ %s  [%s]  %s",
			shared.FormatTimecode(m.ed.StartTime()),
			shared.FormatTimecode(m.ed.EndTime()),
			m.ed.Duration(),
			shared.FormatTimecode(m.ed.CurrentTime()),
			m.ed.Aspect(),
			play,
		)
	}

	timeline := renderTimeline(m.ed, m.trackWidth)
	indent := "  "

	helpKeys := []key.Binding{m.keys.play, m.keys.seekBack, m.keys.seekFwd, m.keys.markIn, m.keys.markOut, m.keys.aspect, m.keys.render, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("Playback error: %v", m.err))
	}

	return fmt.Sprintf("%s\n%s\n\n%s%s\n%s\n%s", title, status, indent, timeline, errLine, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Render submission failed: %v\n\nPress b to go back, q to quit", m.err))
	}

	if m.job == nil {
		return styles.err.Render("No job available\n\nPress b to go back, q to quit")
	}

	title := styles.ok.Render("✓ Render Submitted!")
	info := fmt.Sprintf(
		"\nJob: %s\nRange: %s - %s (%.1fs)\nAspect: %s\nStatus: %s\n",
		m.job.ID,
		shared.FormatTimecode(m.job.StartTime),
		shared.FormatTimecode(m.job.EndTime),
		m.job.EndTime-m.job.StartTime,
		m.job.Aspect,
		m.job.Status,
	)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}
