package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/checklist/internal/model"
)

var (
	ErrorNotFound      = errors.New("not found")
	ErrorSchemaMissing = errors.New("schema missing")
)

// Backend is a raw key-value store holding one opaque value per key.
// Get returns ErrorNotFound when the key was never written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// TaskRepository loads and saves the whole task collection. Load never
// fails: storage faults come back as an empty collection.
type TaskRepository interface {
	Load(ctx context.Context) []model.Task
	Save(ctx context.Context, tasks []model.Task) error
}
