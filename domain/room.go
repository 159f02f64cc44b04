package domain

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Conversation is the ordered message list owned by one user key.
type Conversation struct {
	UserKey  string
	messages []Message
}

// NewConversation copies and sorts messages by timestamp ascending.
// The sort is stable so messages sharing a timestamp keep their store order.
func NewConversation(userKey string, messages []Message) Conversation {
	sorted := make([]Message, len(messages))
	copy(sorted, messages)
	SortByTimestamp(sorted)
	return Conversation{UserKey: userKey, messages: sorted}
}

func (c Conversation) Messages() []Message {
	return c.messages
}

func (c Conversation) Len() int {
	return len(c.messages)
}

func (c Conversation) First() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[0], true
}

func (c Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

func (c Conversation) CountBySender(sender Sender) int {
	return lo.CountBy(c.messages, func(m Message) bool { return m.Sender == sender })
}

type ConversationSummary struct {
	UserKey       string     `json:"userKey"`
	Email         string     `json:"email"`
	TotalMessages int        `json:"totalMessages"`
	UserMessages  int        `json:"userMessages"`
	AdminMessages int        `json:"adminMessages"`
	LastMessage   *Message   `json:"lastMessage"`
	LastActivity  *time.Time `json:"lastActivity"`
}

func (c Conversation) Summary() ConversationSummary {
	summary := ConversationSummary{
		UserKey:       c.UserKey,
		Email:         FromKey(c.UserKey),
		TotalMessages: c.Len(),
		UserMessages:  c.CountBySender(SenderUser),
		AdminMessages: c.CountBySender(SenderAdmin),
	}
	if last, ok := c.Last(); ok {
		summary.LastMessage = &last
		summary.LastActivity = lo.ToPtr(last.Timestamp)
	}
	return summary
}

type UserInfo struct {
	UserKey      string     `json:"userKey"`
	Email        string     `json:"email"`
	MessageCount int        `json:"messageCount"`
	JoinedAt     *time.Time `json:"joinedAt"`
	LastActivity *time.Time `json:"lastActivity"`
}

func (c Conversation) Info() UserInfo {
	info := UserInfo{
		UserKey:      c.UserKey,
		Email:        FromKey(c.UserKey),
		MessageCount: c.Len(),
	}
	if first, ok := c.First(); ok {
		info.JoinedAt = lo.ToPtr(first.Timestamp)
	}
	if last, ok := c.Last(); ok {
		info.LastActivity = lo.ToPtr(last.Timestamp)
	}
	return info
}

// UserConversation is one row of the admin sidebar.
type UserConversation struct {
	UserKey      string     `json:"userKey"`
	Email        string     `json:"email"`
	MessageCount int        `json:"messageCount"`
	LastMessage  *Message   `json:"lastMessage"`
	LastActivity *time.Time `json:"lastActivity"`
}

func (c Conversation) Overview() UserConversation {
	summary := c.Summary()
	return UserConversation{
		UserKey:      summary.UserKey,
		Email:        summary.Email,
		MessageCount: summary.TotalMessages,
		LastMessage:  summary.LastMessage,
		LastActivity: summary.LastActivity,
	}
}

// SortByMostRecentActivity orders sidebar rows newest first, rows without activity last.
func SortByMostRecentActivity(rows []UserConversation) {
	sort.SliceStable(rows, func(i, j int) bool {
		return activity(rows[i]).After(activity(rows[j]))
	})
}

func activity(row UserConversation) time.Time {
	if row.LastActivity == nil {
		return time.Time{}
	}
	return *row.LastActivity
}

// SortByTimestamp sorts messages ascending in place.
func SortByTimestamp(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

// GroupByUserKey splits a flattened listing back into conversations.
func GroupByUserKey(messages []Message) map[string]Conversation {
	grouped := lo.GroupBy(messages, func(m Message) string { return m.UserKey })
	return lo.MapValues(grouped, func(items []Message, userKey string) Conversation {
		return NewConversation(userKey, items)
	})
}
