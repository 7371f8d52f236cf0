package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

const messageCollection = "messages"

// MessageRepository handles database operations for chat messages.
type MessageRepository struct {
	DB *mongo.Database
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{DB: db}
}

// SaveMessage inserts a relayed chat message into the database.
func (r *MessageRepository) SaveMessage(ctx context.Context, message *domain.StoredMessage) error {
	collection := r.DB.Collection(messageCollection)
	_, err := collection.InsertOne(ctx, message)
	return err
}

// RecentMessages retrieves the last N messages, oldest first, for
// history replay and the REST history endpoint.
func (r *MessageRepository) RecentMessages(ctx context.Context, limit int64) ([]*domain.StoredMessage, error) {
	collection := r.DB.Collection(messageCollection)

	// Newest first to apply the limit, then reverse to chronological order.
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*domain.StoredMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// PurgeMessages drops the message collection.
func (r *MessageRepository) PurgeMessages(ctx context.Context) error {
	return r.DB.Collection(messageCollection).Drop(ctx)
}
