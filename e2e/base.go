package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"support-chat/domain"
	"support-chat/domain/event"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

const readTimeout = 5 * time.Second

// BaseSuite drives a server over plain HTTP and WebSocket, the same way a
// browser would.
type BaseSuite struct {
	suite.Suite
	Config  Config
	BaseURL string
}

func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// Step prints a header so long scenarios stay readable in -v output.
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Join dials /socket, joins roomKey and returns once the server has
// processed the join.
func (s *BaseSuite) Join(roomKey string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.BaseURL, "http") + "/socket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err, "failed to dial "+url)
	s.T().Cleanup(func() { _ = conn.Close() })

	s.Send(conn, event.Join, roomKey)
	s.awaitJoined(conn)
	return conn
}

// awaitJoined relies on frames of one socket being handled in order: an
// admin message without userKey is refused differently before and after a join.
func (s *BaseSuite) awaitJoined(conn *websocket.Conn) {
	s.Send(conn, event.AdminMessage, domain.AdminMessageCommand{})
	envelope := s.Read(conn)
	s.Require().Equal(event.MessageError, envelope.Event)
	var failure event.DeliveryFailed
	s.Require().NoError(json.Unmarshal(envelope.Data, &failure))
	s.Require().NotEqual("join a room first", failure.Details, "join was not accepted")
}

func (s *BaseSuite) Send(conn *websocket.Conn, name event.Name, payload any) {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)
	s.Require().NoError(conn.WriteJSON(event.Envelope{Event: name, Data: data}))
}

func (s *BaseSuite) Read(conn *websocket.Conn) event.Envelope {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(readTimeout)))
	var envelope event.Envelope
	s.Require().NoError(conn.ReadJSON(&envelope))
	return envelope
}

// ReadUntil skips presence noise until an event called name arrives.
func (s *BaseSuite) ReadUntil(conn *websocket.Conn, name event.Name) event.Envelope {
	for {
		envelope := s.Read(conn)
		if envelope.Event == name {
			return envelope
		}
	}
}

func (s *BaseSuite) PostJSON(path string, body any) (int, []byte) {
	data, err := json.Marshal(body)
	s.Require().NoError(err)
	resp, err := http.Post(s.BaseURL+path, "application/json", bytes.NewReader(data))
	s.Require().NoError(err)
	return s.drain(resp)
}

func (s *BaseSuite) Get(path string) (int, []byte) {
	resp, err := http.Get(s.BaseURL + path)
	s.Require().NoError(err)
	return s.drain(resp)
}

func (s *BaseSuite) drain(resp *http.Response) (int, []byte) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if s.Config.DebugJSON {
		s.T().Logf("%s %s -> %d\n%s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, body)
	}
	return resp.StatusCode, body
}
