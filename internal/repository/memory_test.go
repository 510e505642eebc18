package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teleconsult/internal/domain"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	first, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "r1", first.ID)

	require.NoError(t, registry.AddParticipant(ctx, "r1", domain.RolePatient, "conn-1"))

	second, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"conn-1"}, second.Patients)
}

func TestParticipantListsTrackJoinsAndLeaves(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)

	// Interleave roles to make sure the lists stay independent.
	require.NoError(t, registry.AddParticipant(ctx, "r1", domain.RolePatient, "p1"))
	require.NoError(t, registry.AddParticipant(ctx, "r1", domain.RoleDoctor, "d1"))
	require.NoError(t, registry.AddParticipant(ctx, "r1", domain.RolePatient, "p2"))
	require.NoError(t, registry.AddParticipant(ctx, "r1", domain.RoleDoctor, "d2"))

	require.NoError(t, registry.RemoveParticipant(ctx, "r1", "p1"))
	require.NoError(t, registry.RemoveParticipant(ctx, "r1", "d2"))

	room, err := registry.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, room.Patients)
	assert.Equal(t, []string{"d1"}, room.Doctors)

	members, err := registry.Members(ctx, "r1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p2", "d1"}, members)
}

func TestRemoveParticipantIsIdempotent(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)
	require.NoError(t, registry.AddParticipant(ctx, "r1", domain.RoleDoctor, "d1"))

	require.NoError(t, registry.RemoveParticipant(ctx, "r1", "d1"))
	require.NoError(t, registry.RemoveParticipant(ctx, "r1", "d1"))
	require.NoError(t, registry.RemoveParticipant(ctx, "r1", "never-joined"))

	// Unknown room is a no-op, not an error.
	require.NoError(t, registry.RemoveParticipant(ctx, "no-such-room", "d1"))

	room, err := registry.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, room.Doctors)
}

func TestHistoryPreservesAppendOrder(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)

	for _, body := range []string{"first", "second", "third"} {
		msg := domain.Message{
			SenderID:   "d1",
			SenderRole: domain.RoleDoctor,
			SenderName: "Alice",
			Body:       body,
			Timestamp:  time.Now().UTC(),
		}
		require.NoError(t, registry.AppendMessage(ctx, "r1", msg))
	}

	history, err := registry.History(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Body)
	assert.Equal(t, "second", history[1].Body)
	assert.Equal(t, "third", history[2].Body)
}

func TestHistoryReturnsSnapshot(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)
	require.NoError(t, registry.AppendMessage(ctx, "r1", domain.Message{Body: "hi"}))

	history, err := registry.History(ctx, "r1")
	require.NoError(t, err)
	history[0].Body = "tampered"

	fresh, err := registry.History(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "hi", fresh[0].Body)
}

func TestAppointmentsAppendOnly(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)

	first := domain.Appointment{Doctor: "Alice", Patient: "Bob", Time: "2024-01-01T10:00"}
	second := domain.Appointment{Doctor: "Alice", Patient: "Bob", Time: "2024-01-01T10:00"}

	// Overlapping appointments are accepted as given.
	require.NoError(t, registry.AppendAppointment(ctx, "r1", first))
	require.NoError(t, registry.AppendAppointment(ctx, "r1", second))

	appointments, err := registry.Appointments(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, first, appointments[0])
}

func TestUnknownRoomErrors(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = registry.Members(ctx, "nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = registry.History(ctx, "nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = registry.Appointments(ctx, "nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	err = registry.AddParticipant(ctx, "nope", domain.RolePatient, "p1")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	err = registry.AppendMessage(ctx, "nope", domain.Message{Body: "hi"})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	err = registry.AppendAppointment(ctx, "nope", domain.Appointment{})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestAddParticipantRejectsUnknownRole(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)

	err = registry.AddParticipant(ctx, "r1", domain.Role("nurse"), "n1")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestListReturnsAllRooms(t *testing.T) {
	registry := NewInMemoryRoomRegistry()
	ctx := context.Background()

	_, err := registry.GetOrCreate(ctx, "r1")
	require.NoError(t, err)
	_, err = registry.GetOrCreate(ctx, "r2")
	require.NoError(t, err)

	rooms, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}
