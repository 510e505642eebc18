package converter

import (
	"time"

	"teleconsult/internal/domain"
)

type RoomResponse struct {
	ID               string    `json:"id"`
	Patients         []string  `json:"patients"`
	Doctors          []string  `json:"doctors"`
	MessageCount     int       `json:"message_count"`
	AppointmentCount int       `json:"appointment_count"`
	CreatedAt        time.Time `json:"created_at"`
}

func RoomToApi(r *domain.Room) *RoomResponse {
	patients := r.Patients
	if patients == nil {
		patients = []string{}
	}
	doctors := r.Doctors
	if doctors == nil {
		doctors = []string{}
	}

	return &RoomResponse{
		ID:               r.ID,
		Patients:         patients,
		Doctors:          doctors,
		MessageCount:     len(r.Messages),
		AppointmentCount: len(r.Appointments),
		CreatedAt:        r.CreatedAt,
	}
}
