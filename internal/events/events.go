// Package events defines enrollment event payloads and their Kafka delivery.
package events

import "time"

// Event types carried in the event_type message header.
const (
	TypeSignedUp     = "enrollment.signed_up"
	TypeUnregistered = "enrollment.unregistered"
)

// ParticipantSignedUp is emitted after an email is added to a roster.
type ParticipantSignedUp struct {
	EventID    string    `json:"event_id"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ParticipantUnregistered is emitted after an email is removed from a roster.
type ParticipantUnregistered struct {
	EventID    string    `json:"event_id"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
