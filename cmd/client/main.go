package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"support-chat/domain"
	"support-chat/domain/event"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	ServerURL string `env:"CHAT_SERVER_URL,default=ws://localhost:3000/socket"`
	Room      string `env:"CHAT_ROOM,required=true"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`
	Colours   bool   `env:"CHAT_COLOURS,default=true"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run joins CHAT_ROOM and prints every event. In the admin room, stdin lines
// of the form "userKey: text" are sent as admin messages.
func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.ServerURL, nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", config.ServerURL, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	if err := writeEnvelope(conn, event.Join, config.Room); err != nil {
		return exitRuntime, fmt.Errorf("join failed: %w", err)
	}
	log.Info("Connected, listening (Ctrl+C to quit)", "server", config.ServerURL, "room", config.Room)

	out := newPrinter(config.Colours)
	errChan := make(chan error, 1)
	go func() {
		for {
			var envelope event.Envelope
			if err := conn.ReadJSON(&envelope); err != nil {
				errChan <- err
				return
			}
			out.print(envelope)
		}
	}()

	if config.Room == domain.AdminRoom {
		go readReplies(conn, out)
	}

	select {
	case <-ctx.Done():
		log.Info("Stopping client...")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		return exitOK, nil
	case err := <-errChan:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return exitOK, nil
		}
		return exitRuntime, fmt.Errorf("connection lost: %w", err)
	}
}

func readReplies(conn *websocket.Conn, printer printer) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		userKey, text, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			printer.warn("expected \"userKey: text\"")
			continue
		}
		cmd := domain.AdminMessageCommand{UserKey: strings.TrimSpace(userKey), Text: strings.TrimSpace(text)}
		if err := writeEnvelope(conn, event.AdminMessage, cmd); err != nil {
			printer.warn(err.Error())
			return
		}
	}
}

func writeEnvelope(conn *websocket.Conn, name event.Name, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(event.Envelope{Event: name, Data: data})
}

type printer struct {
	colours bool
}

func newPrinter(colours bool) printer {
	return printer{colours: colours}
}

func (p printer) print(envelope event.Envelope) {
	switch envelope.Event {
	case event.ChatMessage:
		var message domain.Message
		if err := json.Unmarshal(envelope.Data, &message); err != nil {
			p.warn("undecodable chat message")
			return
		}
		line := fmt.Sprintf("[%s] %s (%s): %s",
			message.Timestamp.Local().Format(time.TimeOnly), message.UserKey, message.Sender, message.Text)
		if message.ImageBase64 != "" {
			line += " [image]"
		}
		p.render(line, color.FgWhite)
	case event.UserConnected, event.UserDisconnected:
		var presence event.Presence
		_ = json.Unmarshal(envelope.Data, &presence)
		p.render(fmt.Sprintf("* %s %s", presence.Email, envelope.Event), color.FgCyan)
	case event.MessageError:
		var failure event.DeliveryFailed
		_ = json.Unmarshal(envelope.Data, &failure)
		p.warn(fmt.Sprintf("%s: %s", failure.Error, failure.Details))
	default:
		p.render(fmt.Sprintf("%s %s", envelope.Event, string(envelope.Data)), color.FgYellow)
	}
}

func (p printer) warn(text string) {
	p.render("! "+text, color.FgRed)
}

func (p printer) render(text string, fg color.Color) {
	if p.colours {
		text = color.New(color.BgBlack, fg).Render(text)
	}
	fmt.Println(text)
}
