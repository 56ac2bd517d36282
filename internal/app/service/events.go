package service

// EventPublisher receives a notification for every admin-visible change.
// The websocket hub implements it; nil publishers are replaced by a no-op.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// entityEvent is the payload of create/update/delete notifications
type entityEvent struct {
	ID uint `json:"id"`
}
