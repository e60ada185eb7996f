// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for clip trimming:
//  1. [CandidateListView] : Browse AI-suggested clip candidates for a video
//  2. [EditorView] : Scrub, preview, and trim the selected clip range
//  3. [ResultView] : Display the submitted render job
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All trim semantics live in [editor.Editor]; the Model translates key and mouse
// input into editor operations and renders the resulting state. Playback surface
// events arrive through a channel-reading command that re-subscribes after each
// message, and a self-rescheduling tick polls the playhead while an editor is open.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, space, s/e, a, r, q)
// with contextual help displayed via charmbracelet/bubbles/help. Timeline dragging
// requires the program to run with mouse reporting enabled (tea.WithMouseCellMotion).
package ui
