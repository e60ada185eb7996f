package editor

import (
	"math"

	"github.com/tubegrow/clipforge/internal/models"
)

const (
	// MinClipDuration is the smallest selectable range in seconds.
	MinClipDuration = 3.0
	// ExtendRange is how far, in seconds, the adjustable window extends beyond
	// the suggested clip on each side.
	ExtendRange = 20.0
)

// Handle identifies which timeline element a drag gesture is moving.
type Handle int

const (
	HandleNone Handle = iota
	HandleStart
	HandleEnd
	HandlePlayhead
)

// Editor owns the trim state for a single clip candidate: the adjustable
// [startTime, endTime] range, the playhead, and the selected aspect ratio.
//
// All mutating operations clamp silently rather than returning errors; there
// is no invalid-input state, only clamped values. Commands to the playback
// surface are fire-and-forget, and anything issued before the surface reports
// ready is dropped.
type Editor struct {
	candidate models.ClipCandidate
	surface   Surface
	onRender  func(models.RenderRequest)

	// Fixed bounds, computed once from the candidate.
	minStart float64
	maxEnd   float64

	startTime   float64
	endTime     float64
	currentTime float64
	aspect      models.AspectRatio

	drag    Handle
	ready   bool
	playing bool
	closed  bool
}

// New creates an editor for the given candidate. The range starts at the
// suggested window, the playhead at its start, and the adjustable bounds
// extend [ExtendRange] seconds beyond each side (clamped to zero on the left).
//
// onRender receives the final trim triple when [Editor.Submit] is called; it
// may be nil when the caller collects the result via [Editor.Request] instead.
func New(candidate models.ClipCandidate, surface Surface, onRender func(models.RenderRequest)) *Editor {
	return &Editor{
		candidate:   candidate,
		surface:     surface,
		onRender:    onRender,
		minStart:    math.Max(0, candidate.OriginalStart-ExtendRange),
		maxEnd:      candidate.OriginalEnd + ExtendRange,
		startTime:   candidate.OriginalStart,
		endTime:     candidate.OriginalEnd,
		currentTime: candidate.OriginalStart,
		aspect:      models.AspectVertical,
	}
}

// Attach asks the playback surface to load the candidate's video positioned at
// the suggested start. Readiness arrives later via [Editor.HandleEvent].
func (e *Editor) Attach() error {
	return e.surface.Load(e.candidate.VideoID, e.candidate.OriginalStart)
}

// HandleEvent applies an asynchronous surface notification to the editor's
// mirrored playback state.
func (e *Editor) HandleEvent(ev Event) {
	if e.closed {
		return
	}
	switch ev.Kind {
	case EventReady:
		e.ready = true
	case EventStateChange:
		e.playing = ev.State == StatePlaying
	}
}

// Candidate returns the immutable clip candidate this session edits.
func (e *Editor) Candidate() models.ClipCandidate { return e.candidate }

// Bounds returns the fixed adjustable window [minStart, maxEnd].
func (e *Editor) Bounds() (minStart, maxEnd float64) { return e.minStart, e.maxEnd }

func (e *Editor) StartTime() float64   { return e.startTime }
func (e *Editor) EndTime() float64     { return e.endTime }
func (e *Editor) CurrentTime() float64 { return e.currentTime }
func (e *Editor) Ready() bool          { return e.ready }
func (e *Editor) Playing() bool        { return e.playing }
func (e *Editor) Closed() bool         { return e.closed }
func (e *Editor) Dragging() Handle     { return e.drag }

// Aspect returns the selected output framing.
func (e *Editor) Aspect() models.AspectRatio { return e.aspect }

// SetAspect selects the output framing for the rendered clip.
func (e *Editor) SetAspect(a models.AspectRatio) {
	if _, err := models.ParseAspectRatio(string(a)); err != nil {
		return
	}
	e.aspect = a
}

// ToggleAspect flips between vertical and square framing.
func (e *Editor) ToggleAspect() { e.aspect = e.aspect.Toggle() }

// Duration returns the selected range length in seconds.
func (e *Editor) Duration() float64 { return e.endTime - e.startTime }

// HasChanges reports whether the range differs from the suggested window.
func (e *Editor) HasChanges() bool {
	return e.startTime != e.candidate.OriginalStart || e.endTime != e.candidate.OriginalEnd
}

// TogglePlay flips play/pause on the surface. No-op before readiness.
//
// Resuming with the playhead at or past the range end restarts the loop from
// the range start, matching what the per-tick loop would do one tick later.
func (e *Editor) TogglePlay() {
	if !e.ready || e.closed {
		return
	}
	if e.playing {
		e.surface.Pause()
		e.playing = false
		return
	}
	if e.currentTime >= e.endTime {
		e.seek(e.startTime)
	}
	e.surface.Play()
	e.playing = true
}

// SeekTo moves the playhead to t, clamped to the adjustable window. No-op
// before readiness.
func (e *Editor) SeekTo(t float64) {
	if !e.ready || e.closed {
		return
	}
	e.seek(clamp(t, e.minStart, e.maxEnd))
}

// SeekRelative moves the playhead by delta seconds, clamped to the window.
func (e *Editor) SeekRelative(delta float64) {
	e.SeekTo(e.currentTime + delta)
}

// DragStart begins a drag gesture on the given handle, pausing playback so the
// preview holds still while trimming.
func (e *Editor) DragStart(h Handle) {
	if e.closed {
		return
	}
	e.drag = h
	if e.playing {
		e.surface.Pause()
		e.playing = false
	}
}

// DragMove translates a pointer x-offset within a track of the given width
// into a time and applies it to whichever handle the active drag holds. The
// track maps linearly onto [minStart, maxEnd].
//
// Start and end handles quantize to 0.1s to avoid jitter; the playhead keeps
// full precision.
func (e *Editor) DragMove(x, width float64) {
	if e.drag == HandleNone || width <= 0 || e.closed {
		return
	}
	t := e.minStart + (clamp(x, 0, width)/width)*(e.maxEnd-e.minStart)
	switch e.drag {
	case HandleStart:
		e.SetStartTime(roundTenth(t))
	case HandleEnd:
		e.SetEndTime(roundTenth(t))
	case HandlePlayhead:
		e.SeekTo(t)
	}
}

// DragEnd finishes the active drag gesture.
func (e *Editor) DragEnd() { e.drag = HandleNone }

// SetStartTime moves the range start to v, clamped so the start stays within
// bounds and at least [MinClipDuration] before the end. A no-op value leaves
// all state, including the playhead, untouched.
func (e *Editor) SetStartTime(v float64) {
	v = clamp(v, e.minStart, e.endTime-MinClipDuration)
	if v == e.startTime || e.closed {
		return
	}
	e.startTime = v
	if e.ready {
		e.seek(v)
	}
}

// SetEndTime moves the range end to v, clamped so the end stays within bounds
// and at least [MinClipDuration] after the start. A no-op value leaves all
// state untouched.
func (e *Editor) SetEndTime(v float64) {
	v = clamp(v, e.startTime+MinClipDuration, e.maxEnd)
	if v == e.endTime || e.closed {
		return
	}
	e.endTime = v
	if e.ready {
		e.seek(v)
	}
}

// Tick polls the surface's position while playing and enforces the loop
// invariant: playback never runs past the selected range end; reaching it
// seeks back to the range start. Callers invoke it once per animation frame
// and must stop invoking it when playback stops or the editor closes.
func (e *Editor) Tick() {
	if !e.playing || !e.ready || e.closed {
		return
	}
	t, err := e.surface.CurrentTime()
	if err != nil {
		return
	}
	if t >= e.endTime {
		e.seek(e.startTime)
		return
	}
	e.currentTime = clamp(t, e.minStart, e.maxEnd)
}

// Percent maps a time within the adjustable window to a 0-100 position for
// proportional timeline rendering.
func (e *Editor) Percent(t float64) float64 {
	return (t - e.minStart) / (e.maxEnd - e.minStart) * 100
}

// TimeAt is the inverse of [Editor.Percent].
func (e *Editor) TimeAt(percent float64) float64 {
	return e.minStart + percent/100*(e.maxEnd-e.minStart)
}

func (e *Editor) StartPercent() float64    { return e.Percent(e.startTime) }
func (e *Editor) EndPercent() float64      { return e.Percent(e.endTime) }
func (e *Editor) PlayheadPercent() float64 { return e.Percent(e.currentTime) }

// OriginalRangePercent returns the suggested window's position for rendering
// the pre-edit marker on the timeline.
func (e *Editor) OriginalRangePercent() (start, end float64) {
	return e.Percent(e.candidate.OriginalStart), e.Percent(e.candidate.OriginalEnd)
}

// Request returns the current trim triple for render submission.
func (e *Editor) Request() models.RenderRequest {
	return models.RenderRequest{
		CandidateID: e.candidate.ID,
		VideoID:     e.candidate.VideoID,
		StartTime:   e.startTime,
		EndTime:     e.endTime,
		Aspect:      e.aspect,
	}
}

// Submit hands the final trim triple to the render callback. The editor does
// not manage the render job's lifecycle; the caller decides what happens next.
func (e *Editor) Submit() {
	if e.onRender != nil {
		e.onRender(e.Request())
	}
}

// Close tears down the playback surface. Safe to call from every exit path
// (cancel, render submission, unmount); only the first call reaches the
// surface.
func (e *Editor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.drag = HandleNone
	e.playing = false
	e.ready = false
	return e.surface.Close()
}

// seek moves the mirrored playhead and the surface together. Callers pass
// already-clamped values.
func (e *Editor) seek(t float64) {
	e.currentTime = t
	e.surface.Seek(t, true)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
