package events

import "time"

// TypeMetadataKey is the message metadata key the publisher stamps with the
// event's type code, so raw subscribers can dispatch without decoding the body.
const TypeMetadataKey = "event_type"

// Event is the contract for payloads carried on the in-process bus. The
// publisher serializes the event itself as JSON, so implementations are plain
// structs with json tags.
type Event interface {
	// EventType returns the code identifying the event, e.g. "CHAT_MESSAGE_SENT".
	EventType() string

	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
}
