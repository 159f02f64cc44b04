//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"support-chat/domain"
	"support-chat/domain/event"
)

// EventSink is the delivery end of one connection.
// Consume must not block past ctx.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	Join(connection domain.Connection, sink EventSink) (previous domain.Connection, rejoined bool)
	Leave(connectionID string) (domain.Connection, bool)
	SinksForRoom(roomKey string, excludedID string) []EventSink
	Sink(connectionID string) (EventSink, bool)
	Connections() []domain.Connection
}

// IMessageSender persists a message and returns its stored form.
type IMessageSender interface {
	Send(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error)
}

type IBroadcaster interface {
	Broadcast(ctx context.Context, userKey string, message domain.Message)
}

type IRelay interface {
	IBroadcaster
	OnJoin(ctx context.Context, connectionID, roomKey string, sink EventSink) error
	OnAdminMessage(ctx context.Context, connectionID string, cmd domain.AdminMessageCommand)
	OnDisconnect(ctx context.Context, connectionID string)
	ConnectedUsers() []domain.ConnectedUser
}

// Worker is a long-running loop owned by a supervisor.
// Returning nil means done for good, an error or a panic means restart.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName returns the worker's type name, for logs.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
