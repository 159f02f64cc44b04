package sink

import (
	"context"
	"sync"

	"support-chat/domain"
	"support-chat/domain/event"
)

// Timeline records every event it receives, in order.
type Timeline struct {
	Owner string

	mu     sync.Mutex
	events []event.DomainEvent
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
	return nil
}

func (t *Timeline) Events() []event.DomainEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]event.DomainEvent(nil), t.events...)
}

// Messages keeps only the chat messages of the timeline.
func (t *Timeline) Messages() []domain.Message {
	var messages []domain.Message
	for _, e := range t.Events() {
		if delivered, ok := e.(event.MessageDelivered); ok {
			messages = append(messages, delivered.Message)
		}
	}
	return messages
}

func (t *Timeline) Count(name event.Name) int {
	count := 0
	for _, e := range t.Events() {
		if e.Name() == name {
			count++
		}
	}
	return count
}
