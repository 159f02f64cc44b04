package e2e

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"support-chat/auth"
	"support-chat/domain"
	"support-chat/domain/event"
	"support-chat/infrastructure/http/server"
	"support-chat/infrastructure/realtime"
	"support-chat/observability"
	"support-chat/repositories"
	"support-chat/runtime"
	"support-chat/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const adminPassword = "correct horse battery staple"

// testRelaySuite runs the whole stack in-process on a temporary Badger store.
type testRelaySuite struct {
	BaseSuite
	db      *badger.DB
	gateway *realtime.Gateway
	server  *httptest.Server
}

func TestRelaySuite(t *testing.T) {
	suite.Run(t, &testRelaySuite{})
}

func (s *testRelaySuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelError)

	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.db = db

	hash, err := auth.HashPassword(adminPassword)
	s.Require().NoError(err)
	issuer := auth.NewTokenIssuer("e2e-secret-e2e-secret-e2e-secret", time.Hour)

	repository := repositories.NewMessageRepository(db, log)
	messageService := services.NewMessageService(repository, log, 1<<20)
	relay := runtime.NewRelay(runtime.NewRegistry(), messageService, log, time.Second)
	s.gateway = realtime.NewGateway(relay, realtime.Options{
		BufferSize:      16,
		WriteTimeout:    time.Second,
		DeliveryTimeout: time.Second,
		AllowedOrigins:  []string{"*"},
	}, log)

	handler := server.New(server.Options{CorsOrigins: []string{"*"}, TokenDuration: time.Hour}, server.Dependencies{
		Messages: messageService,
		Users:    services.NewUserService(repository, log),
		Auth:     services.NewAuthService(auth.Credential{Username: "admin", PasswordHash: hash}, issuer, log),
		Chat:     services.NewChatService(messageService, relay, log),
		Relay:    relay,
		Issuer:   issuer,
		Monitor:  observability.NewMonitor(log),
		Socket:   s.gateway,
	}, log).Handler()

	s.server = httptest.NewServer(handler)
	s.BaseURL = s.server.URL
}

func (s *testRelaySuite) TearDownTest() {
	s.gateway.Shutdown()
	s.server.Close()
	_ = s.db.Close()
}

func (s *testRelaySuite) TestHTTPSendReachesUserAndAdminRooms() {
	user, admin := s.joinBoth()

	s.Step("HTTP send to a@b,com")
	status, body := s.PostJSON("/send", domain.SendMessageCommand{UserKey: "a@b,com", Text: "hi"})
	s.Require().Equal(http.StatusOK, status, string(body))
	var sent struct {
		Success   bool   `json:"success"`
		MessageID string `json:"messageId"`
	}
	s.Require().NoError(json.Unmarshal(body, &sent))
	s.Require().True(sent.Success)
	s.Require().NotEmpty(sent.MessageID)

	s.Step("Both rooms receive the same chat message")
	fromUser := s.ReadUntil(user, event.ChatMessage)
	fromAdmin := s.ReadUntil(admin, event.ChatMessage)
	s.Require().JSONEq(string(fromUser.Data), string(fromAdmin.Data))

	var message domain.Message
	s.Require().NoError(json.Unmarshal(fromUser.Data, &message))
	s.Require().Equal(sent.MessageID, message.ID)
	s.Require().Equal("a@b,com", message.UserKey)
	s.Require().Equal(domain.SenderUser, message.Sender)
	s.Require().Equal("hi", message.Text)

	s.Step("The message is persisted")
	status, body = s.Get("/messages/a@b,com")
	s.Require().Equal(http.StatusOK, status)
	var history []domain.Message
	s.Require().NoError(json.Unmarshal(body, &history))
	s.Require().Len(history, 1)
	s.Require().Equal(message.ID, history[0].ID)
}

func (s *testRelaySuite) TestAdminReplyReachesUserRoom() {
	user, admin := s.joinBoth()

	s.Step("Admin replies over the socket")
	s.Send(admin, event.AdminMessage, domain.AdminMessageCommand{UserKey: "a@b,com", Text: "how can I help?"})

	envelope := s.ReadUntil(user, event.ChatMessage)
	var message domain.Message
	s.Require().NoError(json.Unmarshal(envelope.Data, &message))
	s.Require().Equal(domain.SenderAdmin, message.Sender)
	s.Require().Equal("how can I help?", message.Text)

	s.Step("Conversation summary counts the reply")
	status, body := s.Get("/messages/a@b,com/summary")
	s.Require().Equal(http.StatusOK, status)
	var summary domain.ConversationSummary
	s.Require().NoError(json.Unmarshal(body, &summary))
	s.Require().Equal(1, summary.TotalMessages)
	s.Require().Equal(1, summary.AdminMessages)
}

func (s *testRelaySuite) TestUnknownUserHasEmptyHistory() {
	status, body := s.Get("/messages/nonexistentuser")
	s.Require().Equal(http.StatusOK, status)
	s.Require().JSONEq(`[]`, string(body))
}

func (s *testRelaySuite) TestInvalidSendIsRejected() {
	status, body := s.PostJSON("/send", domain.SendMessageCommand{UserKey: "a@b,com"})
	s.Require().Equal(http.StatusBadRequest, status, string(body))

	status, body = s.Get("/messages/a@b,com")
	s.Require().Equal(http.StatusOK, status)
	s.Require().JSONEq(`[]`, string(body))
}

func (s *testRelaySuite) TestConnectedUsersTracksPresence() {
	s.joinBoth()

	status, body := s.Get("/users/connected")
	s.Require().Equal(http.StatusOK, status)
	var connected struct {
		Count int                    `json:"count"`
		Users []domain.ConnectedUser `json:"users"`
	}
	s.Require().NoError(json.Unmarshal(body, &connected))
	s.Require().Equal(1, connected.Count)
	s.Require().Equal("a@b.com", connected.Users[0].Email)
}

func (s *testRelaySuite) joinBoth() (user, admin *websocket.Conn) {
	s.Step("Admin and user join their rooms")
	admin = s.Join(domain.AdminRoom)
	user = s.Join("a@b,com")
	s.ReadUntil(admin, event.UserConnected)
	return user, admin
}
