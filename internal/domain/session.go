package domain

import "sync"

type SessionState string

const (
	SessionUnjoined SessionState = "unjoined"
	SessionJoined   SessionState = "joined"
	SessionClosed   SessionState = "closed"
)

// Session is the per-connection record owned by the coordinator: the
// connection identifier handed out by the transport plus the role, name
// and room the connection registered on join. The state machine is
// unjoined -> joined -> closed; closed is terminal.
//
// Outbound events go through a buffered channel drained by the
// transport's writer. Delivery is best effort: a full buffer drops the
// frame rather than blocking event handling.
type Session struct {
	ID string

	mu     sync.RWMutex
	state  SessionState
	role   Role
	name   string
	roomID string
	events chan Event
}

func NewSession(id string, buffer int) *Session {
	return &Session{
		ID:     id,
		state:  SessionUnjoined,
		events: make(chan Event, buffer),
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *Session) RoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomID
}

// Join registers the connection's room attributes. Returns false if the
// session is not in the unjoined state.
func (s *Session) Join(role Role, name, roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionUnjoined {
		return false
	}
	s.state = SessionJoined
	s.role = role
	s.name = name
	s.roomID = roomID
	return true
}

// Close transitions to the terminal state and closes the event channel.
// Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionClosed {
		return
	}
	s.state = SessionClosed
	close(s.events)
}

// EnqueueEvent offers an event to the session's outbound buffer. Events
// for a closed session or a full buffer are dropped.
func (s *Session) EnqueueEvent(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == SessionClosed {
		return
	}
	select {
	case s.events <- event:
	default:
	}
}

// Events exposes the outbound stream for the transport's writer. The
// channel is closed when the session closes.
func (s *Session) Events() <-chan Event {
	return s.events
}
