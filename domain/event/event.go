package event

import (
	"support-chat/domain"
)

// Name is the wire name of a realtime event.
type Name string

const (
	Join             Name = "join"
	AdminMessage     Name = "admin message"
	ChatMessage      Name = "chat message"
	MessageError     Name = "message_error"
	UserConnected    Name = "user_connected"
	UserDisconnected Name = "user_disconnected"
)

// DomainEvent is anything the relay pushes to a connection.
type DomainEvent interface {
	Name() Name
	Payload() any
}

// MessageDelivered carries a stored message, userKey included.
type MessageDelivered struct {
	Message domain.Message
}

func (e MessageDelivered) Name() Name   { return ChatMessage }
func (e MessageDelivered) Payload() any { return e.Message }

type DeliveryFailed struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e DeliveryFailed) Name() Name   { return MessageError }
func (e DeliveryFailed) Payload() any { return e }

// Presence is emitted to the admin room when a user connection joins or leaves.
type Presence struct {
	Connected bool   `json:"-"`
	UserKey   string `json:"userKey"`
	Email     string `json:"email"`
	SocketID  string `json:"socketId"`
}

func (e Presence) Name() Name {
	if e.Connected {
		return UserConnected
	}
	return UserDisconnected
}

func (e Presence) Payload() any { return e }

func NewPresence(connected bool, connection domain.Connection) Presence {
	return Presence{
		Connected: connected,
		UserKey:   connection.RoomKey,
		Email:     domain.FromKey(connection.RoomKey),
		SocketID:  connection.ID,
	}
}
