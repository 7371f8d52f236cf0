package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredMessage is a relayed chat message persisted in MongoDB and
// replayed to newly joined clients.
type StoredMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Nickname  string             `bson:"nickname" json:"nickname"`
	Content   string             `bson:"content" json:"message"`
	Kind      MessageKind        `bson:"kind" json:"type"`
	Original  string             `bson:"original" json:"original_msg,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
