package sink

import (
	"context"
	"fmt"
	"sync"

	"support-chat/domain/event"
	"support-chat/errors"
)

// ConnectionSink buffers outbound events of one socket. The relay writes,
// the socket write pump drains Events().
type ConnectionSink struct {
	events chan event.DomainEvent
	once   sync.Once
	done   chan struct{}
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		events: make(chan event.DomainEvent, bufferSize),
		done:   make(chan struct{}),
	}
}

// Consume never blocks: a full buffer is reported as ErrSinkFull.
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.done:
		return fmt.Errorf("%w: connection closed", errors.ErrSinkFull)
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %d events pending", errors.ErrSinkFull, len(s.events))
	}
}

func (s *ConnectionSink) Events() <-chan event.DomainEvent {
	return s.events
}

// Done is closed once the connection is gone.
func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events. The buffer channel itself is never closed so
// a concurrent Consume cannot panic.
func (s *ConnectionSink) Close() {
	s.once.Do(func() { close(s.done) })
}
