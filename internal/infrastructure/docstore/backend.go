package docstore

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSnapshot is returned by a Backend when nothing has been persisted yet.
var ErrNoSnapshot = errors.New("docstore: no snapshot persisted")

// Backend is the persistence medium for the encoded document. Write must
// replace the whole document atomically; readers never see a partial write.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Name() string
}

// MemoryBackend keeps the encoded document in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Read(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Write(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Ping(_ context.Context) error { return nil }

func (b *MemoryBackend) Name() string { return "memory" }
