package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/input"
)

// Command is a message from a remote client. Type "key" injects a raw
// terminal key name; type "action" injects the first key bound to a
// logical action such as "select" or "quit_combo".
type Command struct {
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Action string `json:"action,omitempty"`
}

// Reply acknowledges a Command.
type Reply struct {
	Type  string `json:"type"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// rawKeys returns the raw key names a command stands for. Chords expand to
// both of their keys.
func (s *Server) rawKeys(cmd Command) ([]string, error) {
	switch cmd.Type {
	case "key":
		if cmd.Key == "" {
			return nil, fmt.Errorf("key command without a key")
		}
		return []string{cmd.Key}, nil
	case "action":
		k, ok := input.ParseKey(cmd.Action)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", cmd.Action)
		}
		if keys := s.keymap.Binding(k).Keys(); len(keys) > 0 {
			return keys[:1], nil
		}
		for _, c := range s.keymap.Chords() {
			if c.Key == k {
				return []string{c.First, c.Second}, nil
			}
		}
		return nil, fmt.Errorf("action %q has no key bound", cmd.Action)
	default:
		return nil, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

// handleWebSocket upgrades the connection and starts the client pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	c := newClient(conn)
	s.register(c)
	s.logger.Info("Remote client connected",
		zap.String("remote_addr", c.addr),
		zap.String("tls", GetTLSInfo(r.TLS)),
	)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.writePump(c)
	}()
	go func() {
		defer s.wg.Done()
		s.readPump(c)
		s.unregister(c)
		s.logger.Info("Remote client disconnected", zap.String("remote_addr", c.addr))
	}()
}

// handleState returns the last frame as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	last := s.LastFrame()
	if last == nil {
		last, _ = json.Marshal(Frame{Type: "frame", Cabinet: s.config.Name})
	}
	_, _ = w.Write(last)
}

// handleKeys accepts a single Command for clients that do not keep a
// websocket open.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxMessageSize)

	var cmd Command
	reply := Reply{Type: "reply", OK: true}
	status := http.StatusOK
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		reply = Reply{Type: "reply", Error: "invalid JSON: " + err.Error()}
		status = http.StatusBadRequest
	} else if err := s.execute(cmd); err != nil {
		reply = Reply{Type: "reply", Error: err.Error()}
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}
