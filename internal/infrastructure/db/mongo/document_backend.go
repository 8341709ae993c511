package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smarttodo/tasks-api/internal/infrastructure/docstore"
)

const (
	DefaultCollection = "documents"
	snapshotID        = "snapshot"
)

// DocumentBackend persists the whole document as a single MongoDB document
// keyed by a fixed _id. ReplaceOne with upsert swaps it atomically.
type DocumentBackend struct {
	col *mongo.Collection
}

func NewDocumentBackend(db *mongo.Database, collection string) *DocumentBackend {
	if collection == "" {
		collection = DefaultCollection
	}
	return &DocumentBackend{col: db.Collection(collection)}
}

func (b *DocumentBackend) Read(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.D
	if err := b.col.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNoSnapshot
		}
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return fromDocument(doc)
}

func (b *DocumentBackend) Write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDocument(data)
	if err != nil {
		return err
	}

	_, err = b.col.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (b *DocumentBackend) Ping(ctx context.Context) error {
	return b.col.Database().Client().Ping(ctx, nil)
}

func (b *DocumentBackend) Name() string { return "mongo" }

// toDocument converts the JSON document into BSON under the fixed _id.
func toDocument(data []byte) (bson.D, error) {
	var body bson.D
	if err := bson.UnmarshalExtJSON(data, false, &body); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return append(bson.D{{Key: "_id", Value: snapshotID}}, body...), nil
}

// fromDocument drops _id and renders the rest as relaxed extended JSON, which
// for the stored shapes is plain JSON.
func fromDocument(doc bson.D) ([]byte, error) {
	body := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key != "_id" {
			body = append(body, e)
		}
	}
	data, err := bson.MarshalExtJSON(body, false, false)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
