// Package domain contains core concepts of the support chat.
// This file defines live connections and the presence view built from them.
// No network or transport logic should be added here.
package domain

import "time"

// Connection is the ephemeral record of a joined socket. It is never persisted.
type Connection struct {
	ID       string
	RoomKey  string
	JoinedAt time.Time
}

func (c Connection) IsAdmin() bool {
	return c.RoomKey == AdminRoom
}

// ConnectedUser is the presence view of a non-admin connection.
type ConnectedUser struct {
	SocketID string    `json:"socketId"`
	UserKey  string    `json:"userKey"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (c Connection) ToConnectedUser() ConnectedUser {
	return ConnectedUser{
		SocketID: c.ID,
		UserKey:  c.RoomKey,
		Email:    FromKey(c.RoomKey),
		JoinedAt: c.JoinedAt,
	}
}
