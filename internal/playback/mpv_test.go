package playback

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tubegrow/clipforge/internal/editor"
)

// pipeSurface wires an MPV client to an in-memory connection standing in for
// the mpv process, returning the server end for scripted replies.
func pipeSurface(t *testing.T) (*MPV, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	m := New(Opts{})
	m.conn = client
	go m.readLoop()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return m, server
}

func writeLine(t *testing.T, conn net.Conn, payload string) {
	t.Helper()
	if _, err := conn.Write([]byte(payload + "\n")); err != nil {
		t.Fatalf("failed to write line: %v", err)
	}
}

func expectEvent(t *testing.T, m *MPV, kind editor.EventKind) editor.Event {
	t.Helper()
	select {
	case ev := <-m.Events():
		if ev.Kind != kind {
			t.Fatalf("expected event kind %v, got %+v", kind, ev)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for surface event")
		return editor.Event{}
	}
}

func TestLoadArgs(t *testing.T) {
	args := loadArgs("/tmp/mpv.sock", "https://www.youtube.com/watch?v=abc", 102.5)

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--input-ipc-server=/tmp/mpv.sock") {
		t.Errorf("missing IPC socket flag: %v", args)
	}
	if !strings.Contains(joined, "--pause") {
		t.Errorf("mpv must start paused until the editor commands playback: %v", args)
	}
	if !strings.Contains(joined, "--start=102.500") {
		t.Errorf("missing start offset: %v", args)
	}
	if args[len(args)-1] != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("target must be the final argument: %v", args)
	}
}

func TestResolvers(t *testing.T) {
	t.Run("default maps ids to watch URLs", func(t *testing.T) {
		got := DefaultResolver("dQw4w9WgXcQ")
		if got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("unexpected target: %s", got)
		}
	})

	t.Run("default prefers existing local files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "source.mp4")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if got := DefaultResolver(path); got != path {
			t.Errorf("expected local path, got %s", got)
		}
	})

	t.Run("file resolver ignores the id", func(t *testing.T) {
		resolve := FileResolver("/media/source.mp4")
		if got := resolve("whatever"); got != "/media/source.mp4" {
			t.Errorf("unexpected target: %s", got)
		}
	})
}

func TestProtocol(t *testing.T) {
	t.Run("matches responses to requests by id", func(t *testing.T) {
		m, server := pipeSurface(t)

		go func() {
			scanner := bufio.NewScanner(server)
			if !scanner.Scan() {
				return
			}
			var req request
			if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
				return
			}
			reply, _ := json.Marshal(map[string]any{
				"error":      "success",
				"data":       107.25,
				"request_id": req.RequestID,
			})
			server.Write(append(reply, '\n'))
		}()

		got, err := m.CurrentTime()
		if err != nil {
			t.Fatalf("CurrentTime failed: %v", err)
		}
		if got != 107.25 {
			t.Errorf("expected 107.25, got %v", got)
		}
	})

	t.Run("surfaces command rejections", func(t *testing.T) {
		m, server := pipeSurface(t)

		go func() {
			scanner := bufio.NewScanner(server)
			if !scanner.Scan() {
				return
			}
			var req request
			json.Unmarshal(scanner.Bytes(), &req)
			reply, _ := json.Marshal(map[string]any{
				"error":      "invalid parameter",
				"request_id": req.RequestID,
			})
			server.Write(append(reply, '\n'))
		}()

		if err := m.Seek(10, true); err == nil {
			t.Error("expected an error for a rejected command")
		}
	})

	t.Run("file-loaded emits readiness exactly once", func(t *testing.T) {
		m, server := pipeSurface(t)

		writeLine(t, server, `{"event":"file-loaded"}`)
		expectEvent(t, m, editor.EventReady)

		writeLine(t, server, `{"event":"file-loaded"}`)
		select {
		case ev := <-m.Events():
			t.Fatalf("expected no duplicate ready event, got %+v", ev)
		case <-time.After(50 * time.Millisecond):
		}

		if m.State() != editor.StatePaused {
			t.Errorf("expected paused after load, got %v", m.State())
		}
	})

	t.Run("pause property changes drive state events", func(t *testing.T) {
		m, server := pipeSurface(t)

		writeLine(t, server, `{"event":"file-loaded"}`)
		expectEvent(t, m, editor.EventReady)

		writeLine(t, server, `{"event":"property-change","name":"pause","data":false}`)
		ev := expectEvent(t, m, editor.EventStateChange)
		if ev.State != editor.StatePlaying {
			t.Errorf("expected playing, got %v", ev.State)
		}

		writeLine(t, server, `{"event":"property-change","name":"pause","data":true}`)
		ev = expectEvent(t, m, editor.EventStateChange)
		if ev.State != editor.StatePaused {
			t.Errorf("expected paused, got %v", ev.State)
		}
	})

	t.Run("state changes before readiness stay silent", func(t *testing.T) {
		m, server := pipeSurface(t)

		// Initial property observation arrives before file-loaded.
		writeLine(t, server, `{"event":"property-change","name":"pause","data":true}`)
		select {
		case ev := <-m.Events():
			t.Fatalf("expected no event before readiness, got %+v", ev)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("event channel closes when the connection drops", func(t *testing.T) {
		m, server := pipeSurface(t)

		server.Close()
		select {
		case _, ok := <-m.Events():
			if ok {
				t.Error("expected closed channel after connection loss")
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for channel close")
		}
	})
}
