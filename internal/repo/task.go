package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/checklist/internal/model"
)

const DefaultKey = "game-progress-tracker-tasks"

// TaskRepo stores the collection as a JSON array under a single key.
type TaskRepo struct {
	backend Backend
	key     string
	logger  *zap.Logger
}

func NewTaskRepo(backend Backend, key string, logger *zap.Logger) *TaskRepo {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskRepo{
		backend: backend,
		key:     key,
		logger:  logger,
	}
}

func (r *TaskRepo) Load(ctx context.Context) []model.Task {
	tasks := []model.Task{}

	data, err := r.backend.Get(ctx, r.key)
	if errors.Is(err, ErrorNotFound) {
		return tasks
	}
	if err != nil {
		r.logger.Error("failed to read tasks", zap.String("key", r.key), zap.Error(err))
		return tasks
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return tasks
	}

	var items []sonic.NoCopyRawMessage
	if err := sonic.ConfigStd.Unmarshal(data, &items); err != nil {
		r.logger.Error("discarding unreadable task payload", zap.String("key", r.key), zap.Error(err))
		return tasks
	}

	seen := make(map[int64]bool, len(items))
	for i, item := range items {
		var rec model.Record
		if err := sonic.ConfigStd.Unmarshal([]byte(item), &rec); err != nil {
			r.logger.Warn("skipping malformed task record", zap.Int("index", i), zap.Error(err))
			continue
		}
		t, ok := rec.Task()
		if !ok {
			r.logger.Warn("skipping empty task record", zap.Int("index", i))
			continue
		}
		if seen[t.ID] {
			r.logger.Warn("skipping duplicate task id", zap.Int64("task_id", t.ID))
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}

func (r *TaskRepo) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := sonic.ConfigStd.Marshal(tasks)
	if err != nil {
		r.logger.Error("failed to encode tasks", zap.Error(err))
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.backend.Put(ctx, r.key, data); err != nil {
		r.logger.Error("failed to save tasks", zap.String("key", r.key), zap.Int("count", len(tasks)), zap.Error(err))
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
