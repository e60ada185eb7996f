package editor

// PlayerState mirrors the coarse states reported by an external playback surface.
type PlayerState int

const (
	StateUnstarted PlayerState = iota
	StatePlaying
	StatePaused
	StateEnded
)

func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unstarted"
	}
}

// EventKind enumerates surface notification types.
type EventKind int

const (
	// EventReady fires once, after the surface has loaded the video and can accept
	// play/seek commands.
	EventReady EventKind = iota
	// EventStateChange fires whenever the surface's playback state changes.
	EventStateChange
	// EventError fires when the surface hits an unrecoverable failure.
	EventError
)

// Event is an asynchronous notification from a playback surface.
type Event struct {
	Kind  EventKind
	State PlayerState
	Err   error
}

// Surface is the capability interface the editor requires from an external
// video playback surface. Any conforming player satisfies it; the playback
// package provides an mpv-backed implementation and tests use an in-memory fake.
//
// Load is asynchronous: commands issued before the surface emits [EventReady]
// are dropped by the editor, so implementations never need to queue.
type Surface interface {
	// Load attaches the surface to a video, positioned at startOffset seconds.
	// Readiness is signalled later via Events.
	Load(videoID string, startOffset float64) error

	Play() error
	Pause() error

	// Seek moves playback to an absolute position in seconds. allowAhead permits
	// seeking into portions the surface has not buffered yet.
	Seek(seconds float64, allowAhead bool) error

	// CurrentTime reports the playback position in seconds.
	CurrentTime() (float64, error)

	// Duration reports the total length of the loaded video in seconds.
	Duration() (float64, error)

	// State reports the surface's last known playback state.
	State() PlayerState

	// Events delivers readiness and state-change notifications. The channel is
	// closed when the surface shuts down.
	Events() <-chan Event

	// Close releases the surface's resources. Implementations must tolerate a
	// single call only; the editor guarantees it is invoked at most once.
	Close() error
}
