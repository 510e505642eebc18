package service

import (
	"context"

	"teleconsult/internal/domain"
)

// ConsultInteractor is the coordinator surface the websocket transport
// drives: one session per live connection, inbound events dispatched to
// it, disconnect on socket teardown.
type ConsultInteractor interface {
	Connect(connID string) *domain.Session
	HandleEvent(ctx context.Context, connID string, event *domain.ClientEvent) error
	Disconnect(ctx context.Context, connID string) error
}

// RoomViewer is the read-only surface the REST controllers use.
type RoomViewer interface {
	Room(ctx context.Context, roomID string) (*domain.Room, error)
	History(ctx context.Context, roomID string) ([]domain.Message, error)
	Appointments(ctx context.Context, roomID string) ([]domain.Appointment, error)
}
