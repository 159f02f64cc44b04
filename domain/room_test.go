package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConversation_Summary_Counts_Senders_And_Last_Activity(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	// Given a conversation stored out of order
	conversation := NewConversation("alice@example,com", []Message{
		{ID: "3", Text: "thanks", Sender: SenderUser, Timestamp: at.Add(2 * time.Minute)},
		{ID: "1", Text: "hello", Sender: SenderUser, Timestamp: at},
		{ID: "2", Text: "how can we help?", Sender: SenderAdmin, Timestamp: at.Add(time.Minute)},
	})

	// When summarizing
	summary := conversation.Summary()

	// Then counts and last activity come from the sorted list
	req.Equal("alice@example.com", summary.Email)
	req.Equal(3, summary.TotalMessages)
	req.Equal(2, summary.UserMessages)
	req.Equal(1, summary.AdminMessages)
	req.NotNil(summary.LastMessage)
	req.Equal("3", summary.LastMessage.ID)
	req.Equal(at.Add(2*time.Minute), *summary.LastActivity)
}

func TestConversation_Empty_Summary_Has_No_Last_Message(t *testing.T) {
	req := require.New(t)

	summary := NewConversation("nobody", nil).Summary()

	req.Zero(summary.TotalMessages)
	req.Nil(summary.LastMessage)
	req.Nil(summary.LastActivity)
}

func TestConversation_Info_Uses_First_And_Last_Messages(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	info := NewConversation("bob@example,com", []Message{
		{Sender: SenderUser, Timestamp: at.Add(time.Hour)},
		{Sender: SenderUser, Timestamp: at},
	}).Info()

	req.Equal(2, info.MessageCount)
	req.Equal(at, *info.JoinedAt)
	req.Equal(at.Add(time.Hour), *info.LastActivity)
}

func TestSortByMostRecentActivity_Puts_Inactive_Rows_Last(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC()
	rows := []UserConversation{
		{UserKey: "idle"},
		{UserKey: "old", LastActivity: &at},
		{UserKey: "new", LastActivity: func() *time.Time { t := at.Add(time.Minute); return &t }()},
	}

	SortByMostRecentActivity(rows)

	req.Equal([]string{"new", "old", "idle"}, []string{rows[0].UserKey, rows[1].UserKey, rows[2].UserKey})
}

func TestGroupByUserKey_Rebuilds_Sorted_Conversations(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC()

	grouped := GroupByUserKey([]Message{
		{UserKey: "a", Timestamp: at.Add(time.Second), Text: "second"},
		{UserKey: "b", Timestamp: at, Text: "other"},
		{UserKey: "a", Timestamp: at, Text: "first"},
	})

	req.Len(grouped, 2)
	req.Equal("first", grouped["a"].Messages()[0].Text)
	req.Equal("second", grouped["a"].Messages()[1].Text)
	req.Equal(1, grouped["b"].Len())
}
