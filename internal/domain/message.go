package domain

import "time"

// Message is one chat entry in a room's history. Body and FileURL are
// mutually complementary: a message carries text, a file reference, or
// both. The timestamp is assigned by the server at receipt, never by the
// sender. Immutable once appended.
type Message struct {
	SenderID   string    `json:"senderId"`
	SenderRole Role      `json:"senderRole"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"message,omitempty"`
	FileURL    string    `json:"fileUrl,omitempty"`
	IsVideo    bool      `json:"isVideo,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
