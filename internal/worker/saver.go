package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/checklist/internal/model"
	"github.com/BuzzLyutic/checklist/internal/repo"
)

// Saver persists task snapshots in the background. Only the latest pending
// snapshot is written; older ones are superseded before they reach storage.
type Saver struct {
	repo    repo.TaskRepository
	logger  *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending []model.Task
	dirty   bool

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	saved  atomic.Int64
	failed atomic.Int64
}

func NewSaver(r repo.TaskRepository, logger *zap.Logger, timeout time.Duration) *Saver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Saver{
		repo:    r,
		logger:  logger,
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (s *Saver) Start(ctx context.Context) {
	s.logger.Info("Starting save worker", zap.Duration("timeout", s.timeout))

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop waits for the worker to exit after writing whatever is still pending.
func (s *Saver) Stop() {
	s.logger.Info("Stopping save worker...")
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
	s.logger.Info("Save worker stopped",
		zap.Int64("saved", s.saved.Load()),
		zap.Int64("failed", s.failed.Load()),
	)
}

// Submit queues tasks for saving and returns immediately. The caller must not
// modify tasks afterwards.
func (s *Saver) Submit(tasks []model.Task) {
	s.mu.Lock()
	s.pending = tasks
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Saved reports how many snapshots reached storage.
func (s *Saver) Saved() int64 {
	return s.saved.Load()
}

func (s *Saver) Failed() int64 {
	return s.failed.Load()
}

func (s *Saver) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.flush()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-s.wake:
			s.flush()
		}
	}
}

func (s *Saver) take() ([]model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil, false
	}
	tasks := s.pending
	s.pending, s.dirty = nil, false
	return tasks, true
}

func (s *Saver) flush() {
	tasks, ok := s.take()
	if !ok {
		return
	}

	// Saves outlive the request that caused them.
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.repo.Save(ctx, tasks); err != nil {
		s.failed.Add(1)
		return
	}
	s.saved.Add(1)
	s.logger.Debug("Tasks saved", zap.Int("count", len(tasks)))
}

// Immediate saves synchronously on Submit. It suits one-shot processes such
// as the CLI.
type Immediate struct {
	Repo repo.TaskRepository
}

func (i Immediate) Submit(tasks []model.Task) {
	_ = i.Repo.Save(context.Background(), tasks)
}
