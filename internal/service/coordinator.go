package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"teleconsult/internal/domain"
	"teleconsult/internal/repository"
	"teleconsult/lib/logger/sl"
)

// Coordinator owns connection lifecycle and turns inbound events into
// registry mutations plus broadcasts. Fan-out is to the whole room, the
// room minus the sender, or a single session; events from connections in
// the wrong state are absorbed, never answered with an error frame.
type Coordinator struct {
	registry repository.RoomRegistry
	log      *slog.Logger
	buffer   int

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewCoordinator(registry repository.RoomRegistry, log *slog.Logger, buffer int) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	if buffer <= 0 {
		buffer = 16
	}
	return &Coordinator{
		registry: registry,
		log:      log,
		buffer:   buffer,
		sessions: make(map[string]*domain.Session),
	}
}

// Connect registers a fresh unjoined session for a live connection.
func (c *Coordinator) Connect(connID string) *domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sess, ok := c.sessions[connID]; ok {
		return sess
	}
	sess := domain.NewSession(connID, c.buffer)
	c.sessions[connID] = sess
	c.log.Info("connection registered", slog.String("conn_id", connID))
	return sess
}

// HandleEvent dispatches one inbound frame. A decode failure or unknown
// event name is reported to the caller for logging only; nothing is sent
// back to the offending connection.
func (c *Coordinator) HandleEvent(ctx context.Context, connID string, event *domain.ClientEvent) error {
	if event == nil {
		return errors.New("event is required")
	}

	switch event.Type {
	case domain.ClientJoinRoom:
		var p domain.JoinRoomPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return fmt.Errorf("decode joinRoom: %w", err)
		}
		return c.Join(ctx, connID, p)
	case domain.ClientSendMessage:
		var p domain.SendMessagePayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return fmt.Errorf("decode sendMessage: %w", err)
		}
		return c.SendMessage(ctx, connID, p)
	case domain.ClientStartCall:
		var p domain.StartCallPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return fmt.Errorf("decode startCall: %w", err)
		}
		return c.StartCall(ctx, connID, p)
	case domain.ClientScheduleAppointment:
		var p domain.ScheduleAppointmentPayload
		if err := json.Unmarshal(event.Data, &p); err != nil {
			return fmt.Errorf("decode scheduleAppointment: %w", err)
		}
		return c.ScheduleAppointment(ctx, connID, p)
	case domain.ClientTyping:
		return c.Typing(ctx, connID)
	default:
		return errors.New("unsupported event type: " + event.Type)
	}
}

// Join moves an unjoined session into a room, creating the room on first
// use, then announces presence and replays history to the joiner.
func (c *Coordinator) Join(ctx context.Context, connID string, p domain.JoinRoomPayload) error {
	const op = "coordinator.join"
	log := c.log.With(
		slog.String("op", op),
		slog.String("conn_id", connID),
		slog.String("room_id", p.RoomID),
	)

	sess, ok := c.session(connID)
	if !ok {
		log.Debug("join from unknown connection ignored")
		return nil
	}
	if !p.Role.Valid() {
		log.Debug("join with unknown role ignored", slog.String("role", string(p.Role)))
		return nil
	}

	if !sess.Join(p.Role, p.Name, p.RoomID) {
		log.Debug("join ignored", slog.String("state", string(sess.State())))
		return nil
	}

	if _, err := c.registry.GetOrCreate(ctx, p.RoomID); err != nil {
		return err
	}
	if err := c.registry.AddParticipant(ctx, p.RoomID, p.Role, connID); err != nil {
		log.Error("failed to add participant", sl.Err(err))
		return err
	}

	c.broadcastExcept(ctx, p.RoomID, domain.Event{
		Type: domain.EventStatusUpdate,
		Data: domain.StatusUpdatePayload{UserID: connID, Status: domain.StatusOnline, Name: p.Name},
	}, connID)

	c.broadcast(ctx, p.RoomID, domain.Event{
		Type: domain.EventUserJoined,
		Data: domain.UserJoinedPayload{UserID: connID, Role: p.Role, Name: p.Name},
	})

	history, err := c.registry.History(ctx, p.RoomID)
	if err != nil {
		log.Error("failed to load history", sl.Err(err))
		return err
	}
	sess.EnqueueEvent(domain.Event{Type: domain.EventPreviousMessages, Data: history})

	log.Info("participant joined",
		slog.String("role", string(p.Role)),
		slog.String("name", p.Name),
		slog.Int("history", len(history)),
	)
	return nil
}

// SendMessage stamps the message with the server clock, appends it and
// fans it out: the full room sees newMessage, everyone but the sender
// gets a notify.
func (c *Coordinator) SendMessage(ctx context.Context, connID string, p domain.SendMessagePayload) error {
	const op = "coordinator.sendMessage"
	log := c.log.With(
		slog.String("op", op),
		slog.String("conn_id", connID),
		slog.String("room_id", p.RoomID),
	)

	sess, ok := c.session(connID)
	if !ok || sess.State() != domain.SessionJoined {
		log.Debug("message before join ignored")
		return nil
	}

	msg := domain.Message{
		SenderID:   p.SenderID,
		SenderRole: p.SenderRole,
		SenderName: p.SenderName,
		Body:       p.Message,
		FileURL:    p.FileURL,
		IsVideo:    p.IsVideo,
		Timestamp:  time.Now().UTC(),
	}

	if err := c.registry.AppendMessage(ctx, p.RoomID, msg); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			log.Debug("message for unknown room ignored")
			return nil
		}
		log.Error("failed to append message", sl.Err(err))
		return err
	}

	c.broadcast(ctx, p.RoomID, domain.Event{Type: domain.EventNewMessage, Data: msg})
	c.broadcastExcept(ctx, p.RoomID, domain.Event{
		Type: domain.EventNotify,
		Data: fmt.Sprintf("%s sent a message.", p.SenderName),
	}, connID)

	log.Info("message relayed", slog.String("sender", p.SenderName), slog.Bool("file", p.FileURL != ""))
	return nil
}

// StartCall is a pure rendezvous notification. No call state is kept;
// media negotiation happens between the clients themselves.
func (c *Coordinator) StartCall(ctx context.Context, connID string, p domain.StartCallPayload) error {
	const op = "coordinator.startCall"
	log := c.log.With(
		slog.String("op", op),
		slog.String("conn_id", connID),
		slog.String("room_id", p.RoomID),
	)

	sess, ok := c.session(connID)
	if !ok || sess.State() != domain.SessionJoined {
		log.Debug("call before join ignored")
		return nil
	}

	c.broadcastExcept(ctx, p.RoomID, domain.Event{
		Type: domain.EventIncomingCall,
		Data: domain.IncomingCallPayload{Caller: p.SenderName},
	}, connID)

	log.Info("call signalled", slog.String("caller", p.SenderName))
	return nil
}

// ScheduleAppointment appends the record as given. Names are not checked
// against room participants and overlaps are not detected.
func (c *Coordinator) ScheduleAppointment(ctx context.Context, connID string, p domain.ScheduleAppointmentPayload) error {
	const op = "coordinator.scheduleAppointment"
	log := c.log.With(
		slog.String("op", op),
		slog.String("conn_id", connID),
		slog.String("room_id", p.RoomID),
	)

	sess, ok := c.session(connID)
	if !ok || sess.State() != domain.SessionJoined {
		log.Debug("appointment before join ignored")
		return nil
	}

	appt := domain.Appointment{Doctor: p.Doctor, Patient: p.Patient, Time: p.Time}
	if err := c.registry.AppendAppointment(ctx, p.RoomID, appt); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			log.Debug("appointment for unknown room ignored")
			return nil
		}
		log.Error("failed to append appointment", sl.Err(err))
		return err
	}

	c.broadcast(ctx, p.RoomID, domain.Event{Type: domain.EventAppointmentScheduled, Data: appt})

	log.Info("appointment scheduled",
		slog.String("doctor", p.Doctor),
		slog.String("patient", p.Patient),
		slog.String("time", p.Time),
	)
	return nil
}

// Typing notifies the session's own room, everyone but the typist.
func (c *Coordinator) Typing(ctx context.Context, connID string) error {
	const op = "coordinator.typing"

	sess, ok := c.session(connID)
	if !ok || sess.State() != domain.SessionJoined {
		c.log.Debug("typing before join ignored", slog.String("op", op), slog.String("conn_id", connID))
		return nil
	}

	c.broadcastExcept(ctx, sess.RoomID(), domain.Event{
		Type: domain.EventUserTyping,
		Data: domain.UserTypingPayload{UserID: connID, Name: sess.Name()},
	}, connID)
	return nil
}

// Disconnect tears the session down. If it had joined a room, the
// remaining members see userLeft then an offline statusUpdate.
// Idempotent: a second disconnect for the same connection is a no-op.
func (c *Coordinator) Disconnect(ctx context.Context, connID string) error {
	const op = "coordinator.disconnect"
	log := c.log.With(slog.String("op", op), slog.String("conn_id", connID))

	c.mu.Lock()
	sess, ok := c.sessions[connID]
	if ok {
		delete(c.sessions, connID)
	}
	c.mu.Unlock()
	if !ok {
		return nil
	}

	if sess.State() == domain.SessionJoined {
		roomID, name := sess.RoomID(), sess.Name()
		if err := c.registry.RemoveParticipant(ctx, roomID, connID); err != nil {
			log.Error("failed to remove participant", sl.Err(err))
			return err
		}

		c.broadcastExcept(ctx, roomID, domain.Event{
			Type: domain.EventUserLeft,
			Data: domain.UserLeftPayload{UserID: connID, Name: name},
		}, connID)
		c.broadcastExcept(ctx, roomID, domain.Event{
			Type: domain.EventStatusUpdate,
			Data: domain.StatusUpdatePayload{UserID: connID, Status: domain.StatusOffline, Name: name},
		}, connID)

		log.Info("participant left", slog.String("room_id", roomID), slog.String("name", name))
	}

	sess.Close()
	return nil
}

func (c *Coordinator) Room(ctx context.Context, roomID string) (*domain.Room, error) {
	return c.registry.GetByID(ctx, roomID)
}

func (c *Coordinator) History(ctx context.Context, roomID string) ([]domain.Message, error) {
	return c.registry.History(ctx, roomID)
}

func (c *Coordinator) Appointments(ctx context.Context, roomID string) ([]domain.Appointment, error) {
	return c.registry.Appointments(ctx, roomID)
}

func (c *Coordinator) session(connID string) (*domain.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sess, ok := c.sessions[connID]
	return sess, ok
}

func (c *Coordinator) broadcast(ctx context.Context, roomID string, event domain.Event) {
	c.broadcastExcept(ctx, roomID, event, "")
}

func (c *Coordinator) broadcastExcept(ctx context.Context, roomID string, event domain.Event, exclude string) {
	members, err := c.registry.Members(ctx, roomID)
	if err != nil {
		c.log.Debug("broadcast to unknown room dropped",
			slog.String("room_id", roomID),
			slog.String("type", event.Type),
		)
		return
	}

	c.mu.RLock()
	targets := make([]*domain.Session, 0, len(members))
	for _, id := range members {
		if id == exclude {
			continue
		}
		if sess, ok := c.sessions[id]; ok {
			targets = append(targets, sess)
		}
	}
	c.mu.RUnlock()

	for _, sess := range targets {
		sess.EnqueueEvent(event)
	}
}
