// Package editor implements the clip range editing session at the heart of the review TUI.
//
// An [Editor] owns the mutable trim state for one AI-suggested clip candidate:
// the adjustable [startTime, endTime] range, the preview playhead, and the
// selected output aspect ratio. The adjustable window extends a fixed
// [ExtendRange] beyond the suggestion on each side (never below zero), and the
// range can never shrink under [MinClipDuration]. Every mutation clamps
// silently; the editor has no invalid-input state.
//
// The editor talks to an external video player only through the [Surface]
// capability interface. Readiness is asynchronous: commands issued before the
// surface emits [EventReady] are dropped, and [Editor.Close] is guaranteed to
// reach the surface at most once regardless of how many exit paths invoke it.
//
// While playing, the presentation layer calls [Editor.Tick] once per frame.
// The tick enforces the looping preview: playback that reaches the selected
// range end seeks back to the range start, so the user previews exactly the
// current selection, which may differ from the original suggestion.
//
// The package is free of UI framework dependencies; the ui package translates
// key presses and mouse gestures into these operations.
package editor
