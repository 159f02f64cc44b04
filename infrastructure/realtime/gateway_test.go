package realtime_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"support-chat/domain"
	"support-chat/domain/event"
	"support-chat/errors"
	"support-chat/infrastructure/realtime"
	"support-chat/mocks"
	"support-chat/runtime"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	server   *httptest.Server
	registry *runtime.Registry
	sender   *mocks.MockIMessageSender
}

func newHarness(t *testing.T, origins ...string) harness {
	t.Helper()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	log := logs.GetLoggerFromLevel(slog.LevelError)
	sender := mocks.NewMockIMessageSender(gomock.NewController(t))
	registry := runtime.NewRegistry()
	relay := runtime.NewRelay(registry, sender, log, time.Second)
	gateway := realtime.NewGateway(relay, realtime.Options{
		BufferSize:      16,
		WriteTimeout:    time.Second,
		DeliveryTimeout: time.Second,
		AllowedOrigins:  origins,
	}, log)
	server := httptest.NewServer(gateway)
	t.Cleanup(func() {
		gateway.Shutdown()
		server.Close()
	})
	return harness{server: server, registry: registry, sender: sender}
}

func (h harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(h.server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// join sends a join frame and waits until the registry holds want connections.
func (h harness) join(t *testing.T, conn *websocket.Conn, roomKey string, want int) {
	t.Helper()
	send(t, conn, event.Join, roomKey)
	require.Eventually(t, func() bool {
		return len(h.registry.Connections()) == want
	}, 2*time.Second, 10*time.Millisecond)
}

func send(t *testing.T, conn *websocket.Conn, name event.Name, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(event.Envelope{Event: name, Data: data}))
}

func read(t *testing.T, conn *websocket.Conn) event.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var envelope event.Envelope
	require.NoError(t, conn.ReadJSON(&envelope))
	return envelope
}

func TestGateway_Admin_Message_Reaches_User_Room(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	admin := h.dial(t)
	user := h.dial(t)

	h.join(t, admin, domain.AdminRoom, 1)
	h.join(t, user, "a@b,com", 2)

	presence := read(t, admin)
	req.Equal(event.UserConnected, presence.Event)

	stored := domain.Message{ID: "m1", Text: "hello", Sender: domain.SenderAdmin, Timestamp: domain.Now(), UserKey: "a@b,com"}
	h.sender.EXPECT().Send(gomock.Any(), domain.SendMessageCommand{UserKey: "a@b,com", Text: "hello", Sender: domain.SenderAdmin}).
		Return(stored, nil).Times(1)

	send(t, admin, event.AdminMessage, domain.AdminMessageCommand{UserKey: "a@b,com", Text: "hello"})

	envelope := read(t, user)
	req.Equal(event.ChatMessage, envelope.Event)
	var received domain.Message
	req.NoError(json.Unmarshal(envelope.Data, &received))
	req.Equal(stored.ID, received.ID)
	req.Equal("a@b,com", received.UserKey)
	req.True(stored.Timestamp.Equal(received.Timestamp))
}

func TestGateway_Send_Failure_Is_Reported_To_Sender(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	admin := h.dial(t)
	h.join(t, admin, domain.AdminRoom, 1)

	h.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(domain.Message{}, fmt.Errorf("%w: message is empty", errors.ErrInvalidMessage)).Times(1)

	send(t, admin, event.AdminMessage, domain.AdminMessageCommand{UserKey: "a@b,com"})

	envelope := read(t, admin)
	req.Equal(event.MessageError, envelope.Event)
	var failure event.DeliveryFailed
	req.NoError(json.Unmarshal(envelope.Data, &failure))
	req.Equal("Failed to send message", failure.Error)
	req.Contains(failure.Details, "message is empty")
}

func TestGateway_Rejects_Bad_Frames_And_Stays_Open(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	conn := h.dial(t)

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	req.Equal(event.MessageError, read(t, conn).Event)

	send(t, conn, event.AdminMessage, domain.AdminMessageCommand{UserKey: "a@b,com", Text: "hi"})
	envelope := read(t, conn)
	req.Equal(event.MessageError, envelope.Event)
	req.Contains(string(envelope.Data), "join a room first")

	send(t, conn, event.Join, "bad/key")
	req.Equal(event.MessageError, read(t, conn).Event)
	req.Empty(h.registry.Connections())

	send(t, conn, event.Join, 42)
	req.Equal(event.MessageError, read(t, conn).Event)

	// Still usable after all of the above.
	h.join(t, conn, "a@b,com", 1)
}

func TestGateway_Admin_Message_Requires_User_Key(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	admin := h.dial(t)
	h.join(t, admin, domain.AdminRoom, 1)
	h.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	send(t, admin, event.AdminMessage, domain.AdminMessageCommand{Text: "orphan"})

	envelope := read(t, admin)
	req.Equal(event.MessageError, envelope.Event)
	req.Contains(string(envelope.Data), "userKey is required")
}

func TestGateway_Disconnect_Notifies_Admins(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	admin := h.dial(t)
	user := h.dial(t)
	h.join(t, admin, domain.AdminRoom, 1)
	h.join(t, user, "a@b,com", 2)
	req.Equal(event.UserConnected, read(t, admin).Event)

	req.NoError(user.Close())

	envelope := read(t, admin)
	req.Equal(event.UserDisconnected, envelope.Event)
	var presence event.Presence
	req.NoError(json.Unmarshal(envelope.Data, &presence))
	req.Equal("a@b,com", presence.UserKey)
	req.Equal("a@b.com", presence.Email)
	req.Eventually(func() bool { return len(h.registry.Connections()) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestGateway_Origin_Check(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, "https://support.example.com")
	url := "ws" + strings.TrimPrefix(h.server.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example.com"}})
	req.Error(err)
	req.Equal(http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://support.example.com"}})
	req.NoError(err)
	req.NoError(conn.Close())
}
