package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/input"
	"github.com/muurk/marquee/internal/library"
	"github.com/muurk/marquee/internal/nav"
	"github.com/muurk/marquee/internal/page"
)

type mockInjector struct {
	mu   sync.Mutex
	keys []string
	full bool
}

func (m *mockInjector) Inject(raw string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.full {
		return false
	}
	m.keys = append(m.keys, raw)
	return true
}

func (m *mockInjector) injected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}

func newTestServer(t *testing.T, inj Injector) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(Config{Name: "cab1"}, inj, input.DefaultKeyMap(), zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(v); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
}

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ActiveClients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ActiveClients() = %d, want %d", s.ActiveClients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func arcadeView(t *testing.T) *page.View {
	t.Helper()
	lib, err := library.Parse([]byte(`
collections:
  Arcade:
    items:
      - {name: galaga}
      - {name: pacman}
`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := lib.Resolve("Arcade")
	if err != nil {
		t.Fatal(err)
	}
	return page.NewView(c, false, nil, page.DefaultOptions())
}

func TestConfigFromSettings(t *testing.T) {
	s := config.DefaultSettings().Remote
	s.CertFile = "c.pem"
	s.KeyFile = "k.pem"
	cfg := ConfigFromSettings(s)
	if cfg.Addr != ":8765" || cfg.Name != "marquee" || cfg.CertPath != "c.pem" || cfg.KeyPath != "k.pem" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestNew_BadTLS(t *testing.T) {
	if _, err := New(Config{CertPath: "/nonexistent/cert.pem", KeyPath: "/nonexistent/key.pem"}, nil, nil, nil); err == nil {
		t.Error("expected error for missing certificate")
	}
	if _, err := New(Config{CertPath: "only-cert.pem"}, nil, nil, nil); err == nil {
		t.Error("expected error for a certificate without a key")
	}
}

func TestServer_Commands(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		want    []string
		wantErr string
	}{
		{name: "raw key", cmd: `{"type":"key","key":"down"}`, want: []string{"down"}},
		{name: "action", cmd: `{"type":"action","action":"select"}`, want: []string{"enter"}},
		{name: "chord action", cmd: `{"type":"action","action":"quit_combo"}`, want: []string{"1", "2"}},
		{name: "unknown action", cmd: `{"type":"action","action":"dance"}`, wantErr: "unknown action"},
		{name: "unknown type", cmd: `{"type":"poke"}`, wantErr: "unknown command type"},
		{name: "empty key", cmd: `{"type":"key"}`, wantErr: "without a key"},
		{name: "bad json", cmd: `{`, wantErr: "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inj := &mockInjector{}
			_, ts := newTestServer(t, inj)
			conn := dial(t, ts)

			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.cmd)); err != nil {
				t.Fatal(err)
			}
			var reply Reply
			readJSON(t, conn, &reply)

			if tt.wantErr != "" {
				if reply.OK || !strings.Contains(reply.Error, tt.wantErr) {
					t.Errorf("reply = %+v, want error containing %q", reply, tt.wantErr)
				}
				if len(inj.injected()) != 0 {
					t.Errorf("injected %v on error", inj.injected())
				}
				return
			}
			if !reply.OK {
				t.Fatalf("reply = %+v", reply)
			}
			if got := strings.Join(inj.injected(), ","); got != strings.Join(tt.want, ",") {
				t.Errorf("injected = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServer_QueueFull(t *testing.T) {
	_, ts := newTestServer(t, &mockInjector{full: true})
	conn := dial(t, ts)
	_ = conn.WriteJSON(Command{Type: "key", Key: "down"})
	var reply Reply
	readJSON(t, conn, &reply)
	if reply.OK || reply.Error != "input queue full" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestServer_NoInjector(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	_ = conn.WriteJSON(Command{Type: "key", Key: "down"})
	var reply Reply
	readJSON(t, conn, &reply)
	if reply.OK {
		t.Errorf("reply = %+v, want error", reply)
	}
}

func TestServer_DrawBroadcastsFrames(t *testing.T) {
	s, ts := newTestServer(t, &mockInjector{})
	conn := dial(t, ts)
	waitForClients(t, s, 1)

	view := arcadeView(t)
	s.Draw(view, nav.StateIdle)
	s.Draw(view, nav.StateIdle)
	s.Draw(nil, nav.StateQuit)

	var frame Frame
	readJSON(t, conn, &frame)
	if frame.Type != "frame" || frame.Cabinet != "cab1" || frame.State != "idle" {
		t.Errorf("frame = %+v", frame)
	}
	if frame.View == nil || frame.View.Collection != "Arcade" || len(frame.View.Items) != 2 {
		t.Fatalf("frame view = %+v", frame.View)
	}

	// The duplicate idle frame is suppressed, so the next one is quit.
	readJSON(t, conn, &frame)
	if frame.State != "quit" || frame.View != nil {
		t.Errorf("second frame = %+v", frame)
	}
}

func TestServer_NewClientGetsLastFrame(t *testing.T) {
	s, ts := newTestServer(t, &mockInjector{})
	s.Draw(arcadeView(t), nav.StateIdle)

	conn := dial(t, ts)
	var frame Frame
	readJSON(t, conn, &frame)
	if frame.State != "idle" || frame.View == nil {
		t.Errorf("frame = %+v", frame)
	}
}

func TestServer_HTTP(t *testing.T) {
	inj := &mockInjector{}
	s, ts := newTestServer(t, inj)

	resp, err := http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	var frame Frame
	_ = json.NewDecoder(resp.Body).Decode(&frame)
	resp.Body.Close()
	if frame.Cabinet != "cab1" || frame.State != "" {
		t.Errorf("initial state = %+v", frame)
	}

	s.Draw(arcadeView(t), nav.StateIdle)
	resp, err = http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	_ = json.NewDecoder(resp.Body).Decode(&frame)
	resp.Body.Close()
	if frame.State != "idle" || frame.View == nil {
		t.Errorf("state = %+v", frame)
	}

	resp, err = http.Post(ts.URL+"/keys", "application/json", strings.NewReader(`{"type":"action","action":"back"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("POST /keys status = %d", resp.StatusCode)
	}
	if got := inj.injected(); len(got) != 1 || got[0] != "esc" {
		t.Errorf("injected = %v", got)
	}

	resp, err = http.Post(ts.URL+"/keys", "application/json", strings.NewReader(`nope`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad body status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/keys")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /keys status = %d", resp.StatusCode)
	}
}

func TestServer_ListenAndServe(t *testing.T) {
	s, err := New(Config{Addr: "127.0.0.1:0"}, &mockInjector{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Addr() != nil || s.Port() != 0 {
		t.Error("address before Listen")
	}
	if err := s.Listen(); err != nil {
		t.Fatal(err)
	}
	if s.Port() == 0 {
		t.Fatal("Port() = 0 after Listen")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	url := "ws://" + s.Addr().String() + "/ws"
	var conn *websocket.Conn
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	waitForClients(t, s, 1)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
