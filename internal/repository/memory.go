package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/samber/lo"

	"teleconsult/internal/domain"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrUnknownRole  = errors.New("unknown role")
)

// InMemoryRoomRegistry keeps all room state for the process lifetime.
// One lock serializes mutation of any room, so concurrent appenders to
// the same history never interleave partial writes.
type InMemoryRoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func NewInMemoryRoomRegistry() *InMemoryRoomRegistry {
	return &InMemoryRoomRegistry{
		rooms: make(map[string]*domain.Room),
	}
}

func (r *InMemoryRoomRegistry) GetOrCreate(ctx context.Context, roomID string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		room = domain.NewRoom(roomID)
		r.rooms[roomID] = room
	}
	return room.Clone(), nil
}

func (r *InMemoryRoomRegistry) GetByID(ctx context.Context, roomID string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (r *InMemoryRoomRegistry) List(ctx context.Context) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		result = append(result, room.Clone())
	}
	return result, nil
}

// AddParticipant appends the connection to the role-appropriate list.
// No duplicate check: a double join stays visible as two entries, as the
// caller's state machine is what prevents it.
func (r *InMemoryRoomRegistry) AddParticipant(ctx context.Context, roomID string, role domain.Role, connID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	switch role {
	case domain.RolePatient:
		room.Patients = append(room.Patients, connID)
	case domain.RoleDoctor:
		room.Doctors = append(room.Doctors, connID)
	default:
		return ErrUnknownRole
	}
	return nil
}

// RemoveParticipant drops the connection from both lists. Idempotent: an
// absent identifier, or an unknown room, is a no-op.
func (r *InMemoryRoomRegistry) RemoveParticipant(ctx context.Context, roomID string, connID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}

	keep := func(id string, _ int) bool { return id != connID }
	room.Patients = lo.Filter(room.Patients, keep)
	room.Doctors = lo.Filter(room.Doctors, keep)
	return nil
}

func (r *InMemoryRoomRegistry) Members(ctx context.Context, roomID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Members(), nil
}

func (r *InMemoryRoomRegistry) AppendMessage(ctx context.Context, roomID string, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.Messages = append(room.Messages, msg)
	return nil
}

func (r *InMemoryRoomRegistry) AppendAppointment(ctx context.Context, roomID string, appt domain.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.Appointments = append(room.Appointments, appt)
	return nil
}

func (r *InMemoryRoomRegistry) History(ctx context.Context, roomID string) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return slices.Clone(room.Messages), nil
}

func (r *InMemoryRoomRegistry) Appointments(ctx context.Context, roomID string) ([]domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return slices.Clone(room.Appointments), nil
}
