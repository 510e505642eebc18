package domain

import (
	"slices"
	"time"
)

// Role decides which of the two participant lists a room keeps a
// connection in.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// Room is an isolated consultation context identified by an externally
// supplied string key. It holds the ordered participant lists and the
// append-only message and appointment histories. Rooms are created lazily
// on first join and live for the process lifetime.
//
// A Room is owned exclusively by the room registry; all access goes
// through it.
type Room struct {
	ID           string
	Patients     []string
	Doctors      []string
	Messages     []Message
	Appointments []Appointment
	CreatedAt    time.Time
}

func NewRoom(id string) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
}

// Members returns the connection identifiers of everyone in the room,
// patients first.
func (r *Room) Members() []string {
	out := make([]string, 0, len(r.Patients)+len(r.Doctors))
	out = append(out, r.Patients...)
	out = append(out, r.Doctors...)
	return out
}

func (r *Room) Contains(connID string) bool {
	return slices.Contains(r.Patients, connID) || slices.Contains(r.Doctors, connID)
}

// Clone returns a snapshot copy so callers can read room state without
// aliasing the registry's live slices.
func (r *Room) Clone() *Room {
	return &Room{
		ID:           r.ID,
		Patients:     slices.Clone(r.Patients),
		Doctors:      slices.Clone(r.Doctors),
		Messages:     slices.Clone(r.Messages),
		Appointments: slices.Clone(r.Appointments),
		CreatedAt:    r.CreatedAt,
	}
}
