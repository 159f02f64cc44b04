package runtime

import (
	"context"
	"log/slog"
	"time"

	"support-chat/contract"
	"support-chat/domain"
	"support-chat/domain/event"
	"support-chat/observability"

	"github.com/samber/lo"
)

const failedToSend = "Failed to send message"

// Relay routes realtime events between connections. Rooms are keyed by user
// key, plus the reserved admin room that sees every conversation.
//
// Delivery is best effort: a sink that fails or times out is logged and
// skipped, nothing is retried or queued.
type Relay struct {
	registry        contract.IRegistry
	sender          contract.IMessageSender
	log             *slog.Logger
	deliveryTimeout time.Duration
}

var _ contract.IRelay = (*Relay)(nil)

func NewRelay(registry contract.IRegistry, sender contract.IMessageSender, log *slog.Logger, deliveryTimeout time.Duration) *Relay {
	return &Relay{registry: registry, sender: sender, log: log, deliveryTimeout: deliveryTimeout}
}

// OnJoin subscribes a connection to roomKey. Admins are told when a user
// connection arrives. An invalid room leaves the connection open and unjoined.
func (r *Relay) OnJoin(ctx context.Context, connectionID, roomKey string, sink contract.EventSink) error {
	if err := domain.ValidateUserKey(roomKey); err != nil {
		r.log.Warn("Invalid userKey in join event", "connection_id", connectionID, "user_key", roomKey, "error", err)
		return err
	}

	connection := domain.Connection{ID: connectionID, RoomKey: roomKey, JoinedAt: time.Now().UTC()}
	previous, rejoined := r.registry.Join(connection, sink)
	if !rejoined {
		observability.ConnectionsActive.Inc()
	}
	r.log.Info("Connection joined room", "connection_id", connectionID, "user_key", roomKey, "is_admin", connection.IsAdmin())

	if rejoined && previous.RoomKey != roomKey && !previous.IsAdmin() {
		r.notifyAdmins(ctx, event.NewPresence(false, previous), "")
	}
	if !connection.IsAdmin() {
		r.notifyAdmins(ctx, event.NewPresence(true, connection), "")
	}
	return nil
}

// OnAdminMessage persists a reply typed in an admin dashboard and relays it
// to the user and to the other admins. Any failure is reported to the
// sending connection only.
func (r *Relay) OnAdminMessage(ctx context.Context, connectionID string, cmd domain.AdminMessageCommand) {
	stored, err := r.sender.Send(ctx, cmd.ToSend())
	if err != nil {
		r.log.Warn("Error handling admin message", "connection_id", connectionID, "user_key", cmd.UserKey, "error", err)
		r.reply(ctx, connectionID, event.DeliveryFailed{Error: failedToSend, Details: err.Error()})
		return
	}

	delivered := event.MessageDelivered{Message: stored}
	if stored.UserKey != domain.AdminRoom {
		r.deliver(ctx, r.registry.SinksForRoom(stored.UserKey, ""), delivered)
	}
	r.notifyAdmins(ctx, delivered, connectionID)
	r.log.Info("Admin message relayed", "user_key", stored.UserKey, "message_id", stored.ID)
}

// Broadcast pushes a stored message to its user's room and to the admin room.
func (r *Relay) Broadcast(ctx context.Context, userKey string, message domain.Message) {
	delivered := event.MessageDelivered{Message: message}
	sinks := r.registry.SinksForRoom(userKey, "")
	if userKey != domain.AdminRoom {
		sinks = append(sinks, r.registry.SinksForRoom(domain.AdminRoom, "")...)
	}
	r.deliver(ctx, sinks, delivered)
	r.log.Debug("Message broadcast", "user_key", userKey, "message_id", message.ID, "recipients", len(sinks))
}

// OnDisconnect drops the connection. Unknown connections are ignored.
func (r *Relay) OnDisconnect(ctx context.Context, connectionID string) {
	connection, ok := r.registry.Leave(connectionID)
	if !ok {
		r.log.Debug("Unknown connection disconnected", "connection_id", connectionID)
		return
	}
	observability.ConnectionsActive.Dec()
	r.log.Info("Connection left", "connection_id", connectionID, "user_key", connection.RoomKey)
	if !connection.IsAdmin() {
		r.notifyAdmins(ctx, event.NewPresence(false, connection), "")
	}
}

// ConnectedUsers lists joined connections outside the admin room.
func (r *Relay) ConnectedUsers() []domain.ConnectedUser {
	users := lo.Filter(r.registry.Connections(), func(c domain.Connection, _ int) bool {
		return !c.IsAdmin()
	})
	return lo.Map(users, func(c domain.Connection, _ int) domain.ConnectedUser {
		return c.ToConnectedUser()
	})
}

func (r *Relay) notifyAdmins(ctx context.Context, e event.DomainEvent, excludedID string) {
	r.deliver(ctx, r.registry.SinksForRoom(domain.AdminRoom, excludedID), e)
}

func (r *Relay) reply(ctx context.Context, connectionID string, e event.DomainEvent) {
	sink, ok := r.registry.Sink(connectionID)
	if !ok {
		r.log.Debug("No sink to reply to", "connection_id", connectionID, "event", e.Name())
		return
	}
	r.deliver(ctx, []contract.EventSink{sink}, e)
}

func (r *Relay) deliver(ctx context.Context, sinks []contract.EventSink, e event.DomainEvent) {
	for _, sink := range sinks {
		deliveryCtx, cancel := context.WithTimeout(ctx, r.deliveryTimeout)
		err := sink.Consume(deliveryCtx, e)
		cancel()
		if err != nil {
			r.log.Warn("Delivery failed", "event", e.Name(), "error", err)
			observability.RelayDeliveriesTotal.WithLabelValues(string(e.Name()), "failed").Inc()
			continue
		}
		observability.RelayDeliveriesTotal.WithLabelValues(string(e.Name()), "delivered").Inc()
	}
}
