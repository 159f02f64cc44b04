package sink

import (
	"context"
	"testing"

	"support-chat/domain"
	"support-chat/domain/event"
	"support-chat/errors"

	"github.com/stretchr/testify/require"
)

func TestConnectionSink_Buffers_Then_Reports_Backpressure(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(2)
	ctx := context.Background()
	e := event.MessageDelivered{Message: domain.Message{Text: "hi"}}

	req.NoError(s.Consume(ctx, e))
	req.NoError(s.Consume(ctx, e))
	req.ErrorIs(s.Consume(ctx, e), errors.ErrSinkFull)

	req.Equal(e, <-s.Events())
	req.NoError(s.Consume(ctx, e))
}

func TestConnectionSink_Rejects_After_Close(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(4)
	s.Close()
	s.Close()

	req.ErrorIs(s.Consume(context.Background(), event.DeliveryFailed{Error: "x"}), errors.ErrSinkFull)
	select {
	case <-s.Done():
	default:
		t.Fatal("done should be closed")
	}
}

func TestTimeline_Records_In_Order(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("admin")
	ctx := context.Background()

	req.NoError(timeline.Consume(ctx, event.Presence{Connected: true, UserKey: "a@b,com"}))
	req.NoError(timeline.Consume(ctx, event.MessageDelivered{Message: domain.Message{Text: "one"}}))
	req.NoError(timeline.Consume(ctx, event.MessageDelivered{Message: domain.Message{Text: "two"}}))

	req.Len(timeline.Events(), 3)
	req.Equal(1, timeline.Count(event.UserConnected))
	req.Equal(2, timeline.Count(event.ChatMessage))
	req.Equal("two", timeline.Messages()[1].Text)
}
