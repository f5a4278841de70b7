package server

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Frames queued per client before the client counts as too slow
	sendBuffer = 16
)

// client is one websocket connection.
type client struct {
	conn   *websocket.Conn
	addr   string
	send   chan []byte
	once   sync.Once
	closed chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:   conn,
		addr:   conn.RemoteAddr().String(),
		send:   make(chan []byte, sendBuffer),
		closed: make(chan struct{}),
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.closed) })
}

// offer queues a frame without blocking. A full queue drops the frame.
func (c *client) offer(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readPump handles commands until the peer goes away.
func (s *Server) readPump(c *client) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info("Remote client read error", zap.String("remote_addr", c.addr), zap.Error(err))
			}
			return
		}

		reply := Reply{Type: "reply", OK: true}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			reply = Reply{Type: "reply", Error: "invalid JSON: " + err.Error()}
		} else if err := s.execute(cmd); err != nil {
			reply = Reply{Type: "reply", Error: err.Error()}
		}
		s.logger.Debug("Remote command",
			zap.String("remote_addr", c.addr),
			zap.String("type", cmd.Type),
			zap.String("key", cmd.Key),
			zap.String("action", cmd.Action),
			zap.Bool("ok", reply.OK),
		)

		msg, _ := json.Marshal(reply)
		if !c.offer(msg) {
			s.logger.Warn("Remote client too slow, dropping reply", zap.String("remote_addr", c.addr))
		}
	}
}

// writePump sends queued frames and keeps the connection alive with pings.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Info("Remote client write failed", zap.String("remote_addr", c.addr), zap.Error(err))
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.closed:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// execute injects the raw keys a command stands for.
func (s *Server) execute(cmd Command) error {
	if s.injector == nil {
		return errors.New("remote input is disabled")
	}
	raws, err := s.rawKeys(cmd)
	if err != nil {
		return err
	}
	for _, raw := range raws {
		if !s.injector.Inject(raw) {
			return errors.New("input queue full")
		}
	}
	return nil
}
