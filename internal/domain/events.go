package domain

import "encoding/json"

// Event names pushed to clients.
const (
	EventStatusUpdate         = "statusUpdate"
	EventUserJoined           = "userJoined"
	EventPreviousMessages     = "previousMessages"
	EventNewMessage           = "newMessage"
	EventNotify               = "notify"
	EventIncomingCall         = "incomingCall"
	EventAppointmentScheduled = "appointmentScheduled"
	EventUserTyping           = "userTyping"
	EventUserLeft             = "userLeft"
)

// Event names received from clients.
const (
	ClientJoinRoom            = "joinRoom"
	ClientSendMessage         = "sendMessage"
	ClientStartCall           = "startCall"
	ClientScheduleAppointment = "scheduleAppointment"
	ClientTyping              = "typing"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Event is one outbound frame. Data holds the typed payload for the
// event name (a plain string for notify, []Message for previousMessages).
type Event struct {
	Type string `json:"event"`
	Data any    `json:"data"`
}

// ClientEvent is one inbound frame. The payload stays raw until the
// coordinator knows which shape to decode it into.
type ClientEvent struct {
	Type string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

type StatusUpdatePayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	Name   string `json:"name"`
}

type UserJoinedPayload struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
}

type IncomingCallPayload struct {
	Caller string `json:"caller"`
}

type UserTypingPayload struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type UserLeftPayload struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type JoinRoomPayload struct {
	Role   Role   `json:"role"`
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type SendMessagePayload struct {
	RoomID     string `json:"roomId"`
	Message    string `json:"message"`
	SenderID   string `json:"senderId"`
	SenderRole Role   `json:"senderRole"`
	SenderName string `json:"senderName"`
	FileURL    string `json:"fileUrl"`
	IsVideo    bool   `json:"isVideo"`
}

type StartCallPayload struct {
	RoomID     string `json:"roomId"`
	SenderName string `json:"senderName"`
}

type ScheduleAppointmentPayload struct {
	RoomID  string `json:"roomId"`
	Doctor  string `json:"doctor"`
	Patient string `json:"patient"`
	Time    string `json:"time"`
}
