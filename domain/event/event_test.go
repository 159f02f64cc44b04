package event

import (
	"encoding/json"
	"testing"
	"time"

	"support-chat/domain"

	"github.com/stretchr/testify/require"
)

func TestPresence_Name_Depends_On_Direction(t *testing.T) {
	req := require.New(t)
	connection := domain.Connection{ID: "c1", RoomKey: "a@b,com", JoinedAt: time.Now()}

	joined := NewPresence(true, connection)
	left := NewPresence(false, connection)

	req.Equal(UserConnected, joined.Name())
	req.Equal(UserDisconnected, left.Name())
	req.Equal("a@b.com", joined.Email)
	req.Equal("c1", left.SocketID)
}

func TestToEnvelope_Wraps_Message_Payload(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	evt := MessageDelivered{Message: domain.Message{
		ID: "m1", Text: "hi", Sender: domain.SenderUser, Timestamp: at, UserKey: "a@b,com",
	}}

	envelope, err := ToEnvelope(evt)
	req.NoError(err)

	var decoded map[string]any
	req.NoError(json.Unmarshal(envelope.Data, &decoded))
	req.Equal(ChatMessage, envelope.Event)
	req.Equal("hi", decoded["text"])
	req.Equal("a@b,com", decoded["userKey"])
	req.Equal("2026-03-01T12:00:00Z", decoded["timestamp"])
}
