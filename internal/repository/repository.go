package repository

import (
	"context"

	"teleconsult/internal/domain"
)

// RoomRegistry owns the mapping from room identifier to room state.
// Read accessors return snapshot copies; the live room is never handed
// out.
type RoomRegistry interface {
	GetOrCreate(ctx context.Context, roomID string) (*domain.Room, error)
	GetByID(ctx context.Context, roomID string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	AddParticipant(ctx context.Context, roomID string, role domain.Role, connID string) error
	RemoveParticipant(ctx context.Context, roomID string, connID string) error
	Members(ctx context.Context, roomID string) ([]string, error)
	AppendMessage(ctx context.Context, roomID string, msg domain.Message) error
	AppendAppointment(ctx context.Context, roomID string, appt domain.Appointment) error
	History(ctx context.Context, roomID string) ([]domain.Message, error)
	Appointments(ctx context.Context, roomID string) ([]domain.Appointment, error)
}
