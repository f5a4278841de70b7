package server

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/nav"
	"github.com/muurk/marquee/internal/page"
)

// Frame is what the secondary display shows. It is sent to every client
// whenever it changes.
type Frame struct {
	Type    string         `json:"type"`
	Cabinet string         `json:"cabinet,omitempty"`
	State   string         `json:"state"`
	View    *page.Snapshot `json:"view,omitempty"`
}

// Draw implements nav.SecondaryDisplay. It is called from the controller
// goroutine and from the launch redraw task, so it never blocks on clients.
func (s *Server) Draw(view nav.CollectionView, state nav.State) {
	frame := Frame{Type: "frame", Cabinet: s.config.Name, State: state.String()}
	if snap, ok := page.SnapshotOf(view); ok {
		frame.View = &snap
	}
	s.publish(frame)
}

func (s *Server) publish(frame Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("Failed to encode frame", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(msg, s.last) {
		return
	}
	s.last = msg
	for c := range s.clients {
		if !c.offer(msg) {
			s.logger.Debug("Remote client too slow, dropping frame", zap.String("remote_addr", c.addr))
		}
	}
}

// LastFrame returns the most recent encoded frame, or nil.
func (s *Server) LastFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
