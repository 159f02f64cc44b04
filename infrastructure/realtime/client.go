package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"support-chat/auth"
	"support-chat/domain"
	"support-chat/domain/event"
	"support-chat/sink"

	"github.com/gorilla/websocket"
)

// client is one socket. readPump owns inbound frames, writePump is the
// only goroutine writing data frames.
type client struct {
	id      string
	conn    *websocket.Conn
	sink    *sink.ConnectionSink
	gateway *Gateway
	cancel  context.CancelFunc
	log     *slog.Logger

	joined bool
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.gateway.relay.OnDisconnect(ctx, c.id)
		c.sink.Close()
		c.cancel()
		c.gateway.untrack(c.id)
		_ = c.conn.Close()
		c.log.Info("Socket disconnected", "connection_id", c.id)
	}()

	c.conn.SetReadLimit(maxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.log.Warn("Socket read failed", "connection_id", c.id, "error", err)
			}
			return
		}

		var envelope event.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			c.fail(ctx, "Malformed frame", err.Error())
			continue
		}
		c.dispatch(ctx, envelope)
	}
}

func (c *client) dispatch(ctx context.Context, envelope event.Envelope) {
	switch envelope.Event {
	case event.Join:
		var roomKey string
		if err := json.Unmarshal(envelope.Data, &roomKey); err != nil {
			c.fail(ctx, "Invalid join payload", "room key must be a string")
			return
		}
		if err := c.gateway.relay.OnJoin(ctx, c.id, roomKey, c.sink); err != nil {
			c.fail(ctx, "Failed to join room", err.Error())
			return
		}
		c.joined = true

	case event.AdminMessage:
		// The relay answers through the registry, which only knows joined sockets.
		if !c.joined {
			c.fail(ctx, "Failed to send message", "join a room first")
			return
		}
		var cmd domain.AdminMessageCommand
		if err := json.Unmarshal(envelope.Data, &cmd); err != nil {
			c.fail(ctx, "Failed to send message", "malformed admin message")
			return
		}
		if err := auth.ValidateStruct(cmd); err != nil {
			c.fail(ctx, "Failed to send message", "userKey is required")
			return
		}
		c.gateway.relay.OnAdminMessage(ctx, c.id, cmd)

	default:
		c.log.Debug("Ignoring unknown event", "connection_id", c.id, "event", envelope.Event)
		c.fail(ctx, "Unknown event", string(envelope.Event))
	}
}

// fail answers the socket directly, bypassing the relay.
func (c *client) fail(ctx context.Context, reason, details string) {
	deliveryCtx, cancel := context.WithTimeout(ctx, c.gateway.options.DeliveryTimeout)
	defer cancel()
	if err := c.sink.Consume(deliveryCtx, event.DeliveryFailed{Error: reason, Details: details}); err != nil {
		c.log.Warn("Could not report error to socket", "connection_id", c.id, "error", err)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case e := <-c.sink.Events():
			envelope, err := event.ToEnvelope(e)
			if err != nil {
				c.log.Error("Failed to encode event", "connection_id", c.id, "event", e.Name(), "error", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.gateway.options.WriteTimeout))
			if err := c.conn.WriteJSON(envelope); err != nil {
				c.log.Warn("Socket write failed", "connection_id", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.gateway.options.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.sink.Done():
			return
		}
	}
}

func (c *client) closeWith(code int, reason string) {
	deadline := time.Now().Add(c.gateway.options.WriteTimeout)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = c.conn.Close()
}
