package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"support-chat/domain"
	"support-chat/errors"
	"support-chat/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messageCollection = "messages"

var _ repositories.IMessageRepository = (*MessageRepository)(nil)

type MessageRepository struct {
	collection *mongo.Collection
	log        *slog.Logger
}

func NewMessageRepository(db *mongo.Database, log *slog.Logger) *MessageRepository {
	return &MessageRepository{collection: db.Collection(messageCollection), log: log}
}

type messageDocument struct {
	ID          string    `bson:"_id"`
	UserKey     string    `bson:"userKey"`
	Text        string    `bson:"text"`
	ImageBase64 string    `bson:"imageBase64"`
	Sender      string    `bson:"sender"`
	Timestamp   time.Time `bson:"timestamp"`
}

// EnsureIndexes creates the per-user timeline index. Safe to call on every start.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userKey", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MessageRepository) Append(ctx context.Context, userKey string, message domain.Message) (domain.Message, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	document := messageDocument{
		ID:          id.String(),
		UserKey:     userKey,
		Text:        message.Text,
		ImageBase64: message.ImageBase64,
		Sender:      string(message.Sender),
		Timestamp:   message.Timestamp.UTC(),
	}
	if _, err = r.collection.InsertOne(ctx, document); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	r.log.Debug("Message appended", "user_key", userKey, "message_id", document.ID)
	return document.toMessage(), nil
}

func (r *MessageRepository) ListByUser(ctx context.Context, userKey string) ([]domain.Message, error) {
	return r.find(ctx, bson.M{"userKey": userKey})
}

func (r *MessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.find(ctx, bson.M{})
}

func (r *MessageRepository) ListUserKeys(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "userKey", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	keys := lo.FilterMap(values, func(value any, _ int) (string, bool) {
		key, ok := value.(string)
		return key, ok && key != ""
	})
	sort.Strings(keys)
	return keys, nil
}

func (r *MessageRepository) find(ctx context.Context, filter bson.M) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var documents []messageDocument
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	messages := lo.Map(documents, func(d messageDocument, _ int) domain.Message {
		return d.toMessage()
	})
	domain.SortByTimestamp(messages)
	return messages, nil
}

func (d messageDocument) toMessage() domain.Message {
	return domain.Message{
		ID:          d.ID,
		Text:        d.Text,
		ImageBase64: d.ImageBase64,
		Sender:      domain.Sender(d.Sender),
		Timestamp:   d.Timestamp.UTC(),
		UserKey:     d.UserKey,
	}
}
