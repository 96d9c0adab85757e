package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/middleware"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/internal/pkg/observability"
)

// RoomAuthorizer decides whether identity may subscribe to room
type RoomAuthorizer interface {
	AuthorizeRoom(ctx context.Context, identity models.Identity, room string) error
}

// MessageHandler processes one inbound event for a session
type MessageHandler func(ctx context.Context, session *Session, msg models.WSMessage)

// Options tunes per-session buffering and keepalive
type Options struct {
	SendBufferSize int
	PingInterval   time.Duration
	AllowedOrigins []string
}

type room struct {
	// mu serializes fan-out so every member sees broadcasts in arrival order
	mu      sync.Mutex
	members map[string]*Session
}

// Manager owns live sessions and their trip room memberships.
// Lock order is Manager.mu before room.mu.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	rooms    map[string]*room

	// serializes role-wide fan-out
	roleMu sync.Mutex

	auth       middleware.Authenticator
	authorizer RoomAuthorizer
	handler    MessageHandler
	upgrader   websocket.Upgrader
	opts       Options
}

// NewManager creates a new WebSocket manager
func NewManager(auth middleware.Authenticator, authorizer RoomAuthorizer, opts Options) *Manager {
	if opts.SendBufferSize <= 0 {
		opts.SendBufferSize = 64
	}
	return &Manager{
		sessions:   make(map[string]*Session),
		rooms:      make(map[string]*room),
		auth:       auth,
		authorizer: authorizer,
		opts:       opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(opts.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// SetAuthorizer replaces the room authorizer. Call before serving.
func (m *Manager) SetAuthorizer(a RoomAuthorizer) {
	m.authorizer = a
}

// SetMessageHandler installs the inbound event handler. Call before serving.
func (m *Manager) SetMessageHandler(h MessageHandler) {
	m.handler = h
}

// HandleConnection authenticates, upgrades and serves one realtime connection
func (m *Manager) HandleConnection(c echo.Context) error {
	identity, err := m.authenticate(c)
	if err != nil {
		return err
	}

	conn, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", logger.Err(err))
		return nil
	}

	session := newSession(uuid.NewString(), *identity, conn, m.opts.SendBufferSize)
	m.register(session)
	defer m.Unregister(session)

	go session.writePump(m.opts.PingInterval)
	m.readPump(session)
	return nil
}

func (m *Manager) authenticate(c echo.Context) (*models.Identity, error) {
	token, ok := middleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		token = c.QueryParam("token")
	}
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization token is required")
	}

	identity, err := m.auth.Authenticate(token)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return identity, nil
}

func (m *Manager) readPump(s *Session) {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read ended", logger.SessionID(s.ID), logger.Err(err))
			}
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.SendError(constants.ErrorInvalidFormat, "Invalid message format")
			continue
		}
		if m.handler != nil {
			m.handler(s.ctx, s, msg)
		}
	}
}

func (m *Manager) register(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	observability.RealtimeConnections.Inc()
	logger.Info("Realtime session opened",
		logger.SessionID(s.ID),
		logger.SubjectID(s.Identity.SubjectID),
		logger.String("role", string(s.Identity.Role)))
}

// Unregister drops the session and releases every room it joined.
// Safe to call more than once.
func (m *Manager) Unregister(s *Session) {
	m.mu.Lock()
	if _, ok := m.sessions[s.ID]; !ok {
		m.mu.Unlock()
		s.Close()
		return
	}
	delete(m.sessions, s.ID)
	for name := range s.rooms {
		m.removeMemberLocked(name, s)
	}
	s.rooms = nil
	m.mu.Unlock()

	s.Close()
	observability.RealtimeConnections.Dec()
	logger.Info("Realtime session closed", logger.SessionID(s.ID), logger.SubjectID(s.Identity.SubjectID))
}

// Join subscribes s to name after the authorizer approves
func (m *Manager) Join(ctx context.Context, s *Session, name string) error {
	if m.authorizer != nil {
		if err := m.authorizer.AuthorizeRoom(ctx, s.Identity, name); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; !ok {
		return fmt.Errorf("session %s is closed", s.ID)
	}

	r, ok := m.rooms[name]
	if !ok {
		r = &room{members: make(map[string]*Session)}
		m.rooms[name] = r
	}
	r.mu.Lock()
	r.members[s.ID] = s
	r.mu.Unlock()

	if s.rooms == nil {
		s.rooms = make(map[string]struct{})
	}
	s.rooms[name] = struct{}{}
	return nil
}

// Leave unsubscribes s from name
func (m *Manager) Leave(s *Session, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := s.rooms[name]; !ok {
		return
	}
	delete(s.rooms, name)
	m.removeMemberLocked(name, s)
}

func (m *Manager) removeMemberLocked(name string, s *Session) {
	r, ok := m.rooms[name]
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.members, s.ID)
	empty := len(r.members) == 0
	r.mu.Unlock()
	if empty {
		delete(m.rooms, name)
	}
}

// RoomsOf returns the rooms s is subscribed to
func (m *Manager) RoomsOf(s *Session) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		rooms = append(rooms, name)
	}
	return rooms
}

// RoomSize returns the number of sessions subscribed to name
func (m *Manager) RoomSize(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[name]
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// SessionCount returns the number of live sessions
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// BroadcastToRoom enqueues event for every member of name without blocking.
// It returns the number of sessions the message was queued for.
func (m *Manager) BroadcastToRoom(name, event string, data interface{}) int {
	payload, err := encode(event, data)
	if err != nil {
		logger.Error("Failed to encode broadcast", logger.String("event", event), logger.Err(err))
		return 0
	}

	m.mu.RLock()
	r, ok := m.rooms[name]
	if !ok {
		m.mu.RUnlock()
		return 0
	}
	r.mu.Lock()
	delivered := 0
	for _, s := range r.members {
		if s.enqueue(payload) {
			delivered++
		}
	}
	r.mu.Unlock()
	m.mu.RUnlock()

	return delivered
}

// BroadcastToRole enqueues event for every live session with role
func (m *Manager) BroadcastToRole(role models.Role, event string, data interface{}) int {
	payload, err := encode(event, data)
	if err != nil {
		logger.Error("Failed to encode broadcast", logger.String("event", event), logger.Err(err))
		return 0
	}

	m.roleMu.Lock()
	defer m.roleMu.Unlock()

	m.mu.RLock()
	targets := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if s.Identity.Role == role {
			targets = append(targets, s)
		}
	}
	m.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if s.enqueue(payload) {
			delivered++
		}
	}
	return delivered
}

// Close terminates every live session
func (m *Manager) Close() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		m.Unregister(s)
	}
}

func encode(event string, data interface{}) ([]byte, error) {
	msg := models.WSMessage{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("error marshaling message data: %w", err)
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}
