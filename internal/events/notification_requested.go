package events

import "time"

const NotificationRequestedTopic = "team.notification.requested.v1"

const (
	EventTypeLeaveDecided = "leave.decided"
	EventTypeEventCreated = "event.created"
)

// NotificationRequestedEvent asks the consumer to materialize a notification
// row for RecipientID. Payloads ride the transactional outbox.
type NotificationRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}
