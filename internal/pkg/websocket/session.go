package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/internal/pkg/observability"
)

const writeWait = 10 * time.Second

// Session binds one live connection to its authenticated subject.
// Room membership is owned by the Manager.
type Session struct {
	ID       string
	Identity models.Identity

	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newSession(id string, identity models.Identity, conn *websocket.Conn, buffer int) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:       id,
		Identity: identity,
		conn:     conn,
		send:     make(chan []byte, buffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Context is cancelled when the session closes
func (s *Session) Context() context.Context {
	return s.ctx
}

// Done is closed when the session closes
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Send queues one event for this session only
func (s *Session) Send(event string, data interface{}) bool {
	payload, err := encode(event, data)
	if err != nil {
		logger.Error("Failed to encode message", logger.SessionID(s.ID), logger.Err(err))
		return false
	}
	return s.enqueue(payload)
}

// SendError queues an error event
func (s *Session) SendError(code, message string) bool {
	return s.Send(constants.EventError, models.WSErrorMessage{Code: code, Message: message})
}

// enqueue never blocks. A session whose buffer is full is closed so one
// stalled reader cannot hold up a room.
func (s *Session) enqueue(payload []byte) bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
	}

	select {
	case s.send <- payload:
		return true
	default:
		observability.RealtimeSlowConsumers.Inc()
		logger.Warn("Closing slow realtime session", logger.SessionID(s.ID), logger.SubjectID(s.Identity.SubjectID))
		s.Close()
		return false
	}
}

// Close stops the write pump and closes the connection
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

func (s *Session) writePump(pingInterval time.Duration) {
	var ping <-chan time.Time
	if pingInterval > 0 {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}
	defer s.Close()

	for {
		select {
		case <-s.ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("WebSocket write failed", logger.SessionID(s.ID), logger.Err(err))
				return
			}
		case <-ping:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
