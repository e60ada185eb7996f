// Package playback implements [editor.Surface] on top of mpv's JSON IPC protocol.
//
// An [MPV] instance owns one mpv process started with --input-ipc-server and
// drives it over a unix socket: one JSON object per line, requests matched to
// responses by request_id, property observation for pause/eof state changes.
// mpv resolves YouTube watch URLs through its ytdl hook, so the same surface
// previews both remote videos and local files.
package playback

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/tubegrow/clipforge/internal/editor"
	"github.com/tubegrow/clipforge/internal/shared"
)

const (
	connectTimeout  = 10 * time.Second
	connectInterval = 100 * time.Millisecond
	requestTimeout  = 5 * time.Second
)

// Opts configures an [MPV] surface.
type Opts struct {
	// MPVPath is the mpv binary, defaulting to "mpv" on PATH.
	MPVPath string
	// SocketDir is where the IPC socket is created, defaulting to the OS temp dir.
	SocketDir string
	// Resolve maps a video id to a playable target. Defaults to [DefaultResolver].
	Resolve func(videoID string) string
}

// DefaultResolver treats ids naming an existing file as local media and turns
// everything else into a YouTube watch URL.
func DefaultResolver(videoID string) string {
	if _, err := os.Stat(videoID); err == nil {
		return videoID
	}
	return "https://www.youtube.com/watch?v=" + videoID
}

// FileResolver always plays the given local file regardless of video id.
func FileResolver(path string) func(string) string {
	return func(string) string { return path }
}

// MPV is an [editor.Surface] backed by an mpv subprocess.
type MPV struct {
	path       string
	socketDir  string
	socketPath string
	resolve    func(string) string

	cmd  *exec.Cmd
	conn net.Conn

	mu      sync.Mutex
	nextID  int
	pending map[int]chan response
	state   editor.PlayerState
	ready   bool

	events    chan editor.Event
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

var _ editor.Surface = (*MPV)(nil)

// New creates an unattached mpv surface. The process starts on [MPV.Load].
func New(opts Opts) *MPV {
	if opts.MPVPath == "" {
		opts.MPVPath = "mpv"
	}
	if opts.SocketDir == "" {
		opts.SocketDir = os.TempDir()
	}
	if opts.Resolve == nil {
		opts.Resolve = DefaultResolver
	}
	return &MPV{
		path:      opts.MPVPath,
		socketDir: opts.SocketDir,
		resolve:   opts.Resolve,
		pending:   make(map[int]chan response),
		events:    make(chan editor.Event, 16),
		done:      make(chan struct{}),
	}
}

type request struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

type response struct {
	Error     string          `json:"error,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID int             `json:"request_id,omitempty"`
	Event     string          `json:"event,omitempty"`
	Name      string          `json:"name,omitempty"`
}

// loadArgs builds the mpv invocation for a target positioned at startOffset.
func loadArgs(socketPath, target string, startOffset float64) []string {
	return []string{
		"--input-ipc-server=" + socketPath,
		"--no-terminal",
		"--keep-open=yes",
		"--pause",
		fmt.Sprintf("--start=%.3f", startOffset),
		target,
	}
}

// Load starts mpv for the resolved target, connects to its IPC socket, and
// begins observing playback state. [editor.EventReady] is emitted once mpv
// reports the file loaded.
func (m *MPV) Load(videoID string, startOffset float64) error {
	if err := os.MkdirAll(m.socketDir, 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}
	m.socketPath = filepath.Join(m.socketDir, fmt.Sprintf("clipforge-mpv-%s.sock", shared.GenerateID()))

	target := m.resolve(videoID)
	m.cmd = exec.Command(m.path, loadArgs(m.socketPath, target, startOffset)...)
	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("%w: failed to start mpv: %v", shared.ErrPlayerUnavailable, err)
	}

	conn, err := m.dial()
	if err != nil {
		m.cmd.Process.Kill()
		m.cmd.Wait()
		return err
	}
	m.conn = conn

	go m.readLoop()

	// Property observation delivers the current value immediately, then every
	// change; the editor mirrors these via EventStateChange.
	m.send("observe_property", 1, "pause")
	m.send("observe_property", 2, "eof-reached")

	return nil
}

// dial waits for mpv to create the IPC socket and connects to it.
func (m *MPV) dial() (net.Conn, error) {
	deadline := time.Now().Add(connectTimeout)
	for {
		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: mpv socket never appeared at %s", shared.ErrPlayerUnavailable, m.socketPath)
		}
		time.Sleep(connectInterval)
	}
}

// readLoop consumes IPC lines, routing responses to pending requests and
// translating mpv events into [editor.Event] notifications.
func (m *MPV) readLoop() {
	scanner := bufio.NewScanner(m.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var msg response
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		m.handleMessage(msg)
	}
	close(m.done)
	close(m.events)
}

func (m *MPV) handleMessage(msg response) {
	if msg.Event == "" {
		m.mu.Lock()
		ch, ok := m.pending[msg.RequestID]
		if ok {
			delete(m.pending, msg.RequestID)
		}
		m.mu.Unlock()
		if ok {
			ch <- msg
		}
		return
	}

	switch msg.Event {
	case "file-loaded":
		m.mu.Lock()
		first := !m.ready
		m.ready = true
		m.state = editor.StatePaused
		m.mu.Unlock()
		if first {
			m.emit(editor.Event{Kind: editor.EventReady})
		}
	case "property-change":
		m.handlePropertyChange(msg)
	case "end-file":
		m.setState(editor.StateEnded)
	}
}

func (m *MPV) handlePropertyChange(msg response) {
	switch msg.Name {
	case "pause":
		var paused bool
		if err := json.Unmarshal(msg.Data, &paused); err != nil {
			return
		}
		if paused {
			m.setState(editor.StatePaused)
		} else {
			m.setState(editor.StatePlaying)
		}
	case "eof-reached":
		var eof bool
		if err := json.Unmarshal(msg.Data, &eof); err != nil {
			return
		}
		if eof {
			m.setState(editor.StateEnded)
		}
	}
}

func (m *MPV) setState(s editor.PlayerState) {
	m.mu.Lock()
	changed := m.state != s
	m.state = s
	ready := m.ready
	m.mu.Unlock()
	if changed && ready {
		m.emit(editor.Event{Kind: editor.EventStateChange, State: s})
	}
}

// emit delivers an event without blocking; a stalled consumer drops
// notifications rather than wedging the read loop.
func (m *MPV) emit(ev editor.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

// send issues a command and waits for mpv's acknowledgement.
func (m *MPV) send(args ...any) (json.RawMessage, error) {
	m.mu.Lock()
	if m.conn == nil {
		m.mu.Unlock()
		return nil, shared.ErrPlayerUnavailable
	}
	m.nextID++
	id := m.nextID
	ch := make(chan response, 1)
	m.pending[id] = ch
	conn := m.conn
	m.mu.Unlock()

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		m.mu.Lock()
		delete(m.pending, id)
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: write failed: %v", shared.ErrPlayerUnavailable, err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv rejected command: %s", resp.Error)
		}
		return resp.Data, nil
	case <-m.done:
		return nil, shared.ErrPlayerUnavailable
	case <-time.After(requestTimeout):
		m.mu.Lock()
		delete(m.pending, id)
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: command timed out", shared.ErrPlayerUnavailable)
	}
}

func (m *MPV) Play() error {
	_, err := m.send("set_property", "pause", false)
	return err
}

func (m *MPV) Pause() error {
	_, err := m.send("set_property", "pause", true)
	return err
}

// Seek moves to an absolute position. mpv can seek anywhere in the file, so
// allowAhead has no extra effect here.
func (m *MPV) Seek(seconds float64, allowAhead bool) error {
	_, err := m.send("seek", seconds, "absolute+exact")
	return err
}

func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloat("time-pos")
}

func (m *MPV) Duration() (float64, error) {
	return m.getFloat("duration")
}

func (m *MPV) getFloat(property string) (float64, error) {
	data, err := m.send("get_property", property)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("unexpected %s payload: %w", property, err)
	}
	return v, nil
}

func (m *MPV) State() editor.PlayerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MPV) Events() <-chan editor.Event {
	return m.events
}

// Close shuts down the mpv process and removes the IPC socket. Subsequent
// calls return the first result.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		// Best effort: ask mpv to quit before resorting to a kill.
		m.send("quit")

		m.mu.Lock()
		conn := m.conn
		m.conn = nil
		m.mu.Unlock()

		if conn != nil {
			conn.Close()
		}
		if m.cmd != nil && m.cmd.Process != nil {
			waited := make(chan error, 1)
			go func() { waited <- m.cmd.Wait() }()
			select {
			case <-waited:
			case <-time.After(2 * time.Second):
				m.cmd.Process.Kill()
				<-waited
			}
		}
		if m.socketPath != "" {
			os.Remove(m.socketPath)
		}
	})
	return m.closeErr
}
