package realtime

import (
	"encoding/json"
	"strings"
)

// EventType identifies the kind of row-level change a subscription is
// interested in.
type EventType string

const (
	// EventInsert matches row insertions.
	EventInsert EventType = "INSERT"
	// EventUpdate matches row updates.
	EventUpdate EventType = "UPDATE"
	// EventDelete matches row deletions.
	EventDelete EventType = "DELETE"
	// EventAll matches every change event.
	EventAll EventType = "*"
)

// Payload is the canonical change event every raw server message is
// normalized into before dispatch.
type Payload struct {
	EventType       EventType      `json:"eventType"`
	New             map[string]any `json:"new,omitempty"`
	Old             map[string]any `json:"old,omitempty"`
	Table           string         `json:"table"`
	Schema          string         `json:"schema,omitempty"`
	CommitTimestamp string         `json:"commit_timestamp,omitempty"`
}

// rawMessage tolerates the two wire shapes the server emits: the generic
// change message ({action|eventType, record|new, old, collection|table}) and
// the data body of a named insert/update/delete event.
type rawMessage struct {
	Action          string         `json:"action"`
	EventType       string         `json:"eventType"`
	Record          map[string]any `json:"record"`
	New             map[string]any `json:"new"`
	Old             map[string]any `json:"old"`
	Collection      string         `json:"collection"`
	Table           string         `json:"table"`
	Schema          string         `json:"schema"`
	CommitTimestamp string         `json:"commit_timestamp"`
}

// normalizePayload converts a raw message body into the canonical Payload.
// eventName overrides the body's own event designation when the message
// arrived as a named stream event (insert/update/delete); pass "" for the
// generic message shape. Returns false when the body cannot be parsed or
// names no event type.
func normalizePayload(eventName, data string) (Payload, bool) {
	var raw rawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return Payload{}, false
	}

	eventType := eventName
	if eventType == "" {
		eventType = raw.Action
	}
	if eventType == "" {
		eventType = raw.EventType
	}
	eventType = strings.ToUpper(eventType)

	switch EventType(eventType) {
	case EventInsert, EventUpdate, EventDelete:
	default:
		return Payload{}, false
	}

	payload := Payload{
		EventType:       EventType(eventType),
		New:             raw.New,
		Old:             raw.Old,
		Table:           raw.Table,
		Schema:          raw.Schema,
		CommitTimestamp: raw.CommitTimestamp,
	}
	if payload.New == nil {
		payload.New = raw.Record
	}
	if payload.Table == "" {
		payload.Table = raw.Collection
	}
	return payload, true
}
