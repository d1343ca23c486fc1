package collectednotes

import (
	"encoding/json"
	"fmt"
)

// WebhookEventType tags the payload a site's webhook URL receives when a
// note changes. The service produces these; this package only gives a
// receiver built elsewhere something typed to decode into.
type WebhookEventType string

const (
	EventNoteCreated   WebhookEventType = "note-created"
	EventNoteUpdated   WebhookEventType = "note-updated"
	EventNoteDeleted   WebhookEventType = "note-deleted"
	EventNoteReordered WebhookEventType = "note-reordered"
)

// WebhookEvent is one decoded webhook delivery. Note is set for the
// created/updated/deleted variants; Notes is set for the reordered
// variant and carries the site's notes in their new order.
type WebhookEvent struct {
	Event WebhookEventType
	Note  *Note
	Notes []Note
}

// ParseWebhookEvent decodes a webhook delivery body. Unknown event tags
// are rejected so a receiver never silently mishandles a new variant.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var envelope struct {
		Event WebhookEventType `json:"event"`
		Data  json.RawMessage  `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	ev := &WebhookEvent{Event: envelope.Event}
	switch envelope.Event {
	case EventNoteCreated, EventNoteUpdated, EventNoteDeleted:
		var note Note
		if err := json.Unmarshal(envelope.Data, &note); err != nil {
			return nil, fmt.Errorf("failed to decode %s data: %w", envelope.Event, err)
		}
		ev.Note = &note
	case EventNoteReordered:
		if err := json.Unmarshal(envelope.Data, &ev.Notes); err != nil {
			return nil, fmt.Errorf("failed to decode %s data: %w", envelope.Event, err)
		}
	default:
		return nil, fmt.Errorf("unknown webhook event %q", envelope.Event)
	}

	return ev, nil
}
