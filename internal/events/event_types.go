package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInternEnrolled      EventType = "intern_enrolled"
	EventOfferLetterSent     EventType = "offer_letter_sent"
	EventCertificateSent     EventType = "certificate_sent"
	EventContactReceived     EventType = "contact_received"
	EventRosterSyncCompleted EventType = "roster_sync_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// InternEnrolledPayload payload.
type InternEnrolledPayload struct {
	InternID string `json:"intern_id"`
	Email    string `json:"email"`
	Domain   string `json:"domain"`
	Phase    int    `json:"phase"`
	// Source distinguishes dashboard creations from roster sync.
	Source string `json:"source"`
}

// OfferLetterSentPayload payload.
type OfferLetterSentPayload struct {
	InternID string `json:"intern_id"`
	Email    string `json:"email"`
}

// CertificateSentPayload payload.
type CertificateSentPayload struct {
	InternID string `json:"intern_id"`
	Email    string `json:"email"`
}

// ContactReceivedPayload payload.
type ContactReceivedPayload struct {
	ContactID string `json:"contact_id"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
}

// RosterSyncCompletedPayload payload.
type RosterSyncCompletedPayload struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}
