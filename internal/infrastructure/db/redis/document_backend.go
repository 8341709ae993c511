package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/smarttodo/tasks-api/internal/infrastructure/docstore"
)

const DefaultKey = "smarttodo:document"

// DocumentBackend stores the encoded document under a single key. SET replaces
// the value atomically, so GET never returns a partial document.
type DocumentBackend struct {
	client *redis.Client
	key    string
}

func NewDocumentBackend(client *redis.Client, key string) *DocumentBackend {
	if key == "" {
		key = DefaultKey
	}
	return &DocumentBackend{client: client, key: key}
}

func (b *DocumentBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, docstore.ErrNoSnapshot
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (b *DocumentBackend) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *DocumentBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *DocumentBackend) Name() string { return "redis" }
