package models

import (
	"time"
)

type Registration struct {
	ID           string     `json:"id"`
	EventID      string     `json:"eventId"`
	UserID       string     `json:"userId"`
	UserName     string     `json:"userName"`
	UserEmail    string     `json:"userEmail"`
	UserPhone    string     `json:"userPhone,omitempty"`
	StudentID    string     `json:"studentId,omitempty"`
	RegisteredAt time.Time  `json:"registeredAt"`
	CheckedIn    bool       `json:"checkedIn"`
	CheckedInAt  *time.Time `json:"checkedInAt,omitempty"`
	QRCode       string     `json:"qrCode"`
}

// UserRegistration pairs a registration with its event. Event is nil when
// the event no longer exists.
type UserRegistration struct {
	Registration Registration `json:"registration"`
	Event        *Event       `json:"event,omitempty"`
}
