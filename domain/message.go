// Package domain contains core concepts of the support chat.
// This file defines Message values and their rules.
// Messages are immutable once stored.
package domain

import (
	"time"
)

// MaxTextLength is the maximum number of characters a message text may carry.
const MaxTextLength = 1000

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

func (s Sender) IsValid() bool {
	return s == SenderUser || s == SenderAdmin
}

// Message is a single entry of a conversation.
// UserKey is only filled on the stored/broadcast form and on cross-conversation listings.
type Message struct {
	ID          string    `json:"id,omitempty"`
	Text        string    `json:"text"`
	ImageBase64 string    `json:"imageBase64"`
	Sender      Sender    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	UserKey     string    `json:"userKey,omitempty"`
}

func (m Message) HasContent() bool {
	return m.Text != "" || m.ImageBase64 != ""
}

// Now returns the timestamp assigned to new messages: UTC with millisecond precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
