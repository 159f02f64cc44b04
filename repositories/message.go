//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"support-chat/domain"
	"support-chat/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const messagesPrefix = "messages/"

type IMessageRepository interface {
	Append(ctx context.Context, userKey string, message domain.Message) (domain.Message, error)
	ListByUser(ctx context.Context, userKey string) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	ListUserKeys(ctx context.Context) ([]string, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// DiskMessage is the value stored under messages/{userKey}/{id}.
// The user key lives in the path only.
type DiskMessage struct {
	Text        string    `json:"text"`
	ImageBase64 string    `json:"imageBase64"`
	Sender      string    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
}

// Append stores a message at "messages/{userKey}/{uuidv7}".
// UUIDv7 ids sort lexicographically by creation time, so a prefix scan
// already yields messages in insertion order.
func (m MessageRepository) Append(ctx context.Context, userKey string, message domain.Message) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	data, err := json.Marshal(fromMessage(message))
	if err != nil {
		return domain.Message{}, err
	}
	key := messageKey(userKey, id.String())
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	m.log.Debug("Message appended", "user_key", userKey, "message_id", id.String())

	message.ID = id.String()
	message.UserKey = userKey
	return message, nil
}

// ListByUser returns the conversation of one user, oldest first.
// Unknown users yield an empty slice.
func (m MessageRepository) ListByUser(ctx context.Context, userKey string) ([]domain.Message, error) {
	messages, err := m.scan(ctx, []byte(messagesPrefix+userKey+domain.PathSeparator))
	if err != nil {
		return nil, err
	}
	domain.SortByTimestamp(messages)
	return messages, nil
}

// ListAll flattens every conversation, each message tagged with its user key.
func (m MessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	messages, err := m.scan(ctx, []byte(messagesPrefix))
	if err != nil {
		return nil, err
	}
	domain.SortByTimestamp(messages)
	return messages, nil
}

// ListUserKeys walks keys only, values are never fetched.
func (m MessageRepository) ListUserKeys(ctx context.Context) ([]string, error) {
	var keys []string
	prefix := []byte(messagesPrefix)
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			userKey, _, ok := splitKey(it.Item().Key())
			if !ok {
				continue
			}
			keys = append(keys, userKey)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return lo.Uniq(keys), nil
}

func (m MessageRepository) scan(ctx context.Context, prefix []byte) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			userKey, id, ok := splitKey(item.Key())
			if !ok {
				m.log.Warn("Skipping malformed message key", "key", string(item.Key()))
				continue
			}
			err := item.Value(func(value []byte) error {
				var disk DiskMessage
				if err := json.Unmarshal(value, &disk); err != nil {
					return err
				}
				messages = append(messages, toMessage(disk, id, userKey))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return messages, nil
}

func messageKey(userKey, id string) []byte {
	return []byte(messagesPrefix + userKey + domain.PathSeparator + id)
}

// splitKey parses "messages/{userKey}/{id}".
func splitKey(key []byte) (userKey, id string, ok bool) {
	rest, found := bytes.CutPrefix(key, []byte(messagesPrefix))
	if !found {
		return "", "", false
	}
	userKey, id, ok = strings.Cut(string(rest), domain.PathSeparator)
	if !ok || userKey == "" || id == "" {
		return "", "", false
	}
	return userKey, id, true
}

func fromMessage(message domain.Message) DiskMessage {
	return DiskMessage{
		Text:        message.Text,
		ImageBase64: message.ImageBase64,
		Sender:      string(message.Sender),
		Timestamp:   message.Timestamp.UTC(),
	}
}

func toMessage(disk DiskMessage, id, userKey string) domain.Message {
	return domain.Message{
		ID:          id,
		Text:        disk.Text,
		ImageBase64: disk.ImageBase64,
		Sender:      domain.Sender(disk.Sender),
		Timestamp:   disk.Timestamp.UTC(),
		UserKey:     userKey,
	}
}
