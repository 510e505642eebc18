package domain

// Appointment is a scheduled consultation record. Names and time are
// stored exactly as given; the time is an opaque label, not parsed or
// checked for conflicts. Immutable once appended.
type Appointment struct {
	Doctor  string `json:"doctor"`
	Patient string `json:"patient"`
	Time    string `json:"time"`
}
