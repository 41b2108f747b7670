package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/checklist/internal/collection"
	"github.com/BuzzLyutic/checklist/internal/model"
	"github.com/BuzzLyutic/checklist/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// Saver receives every new canonical snapshot. Implementations must not
// modify the slice.
type Saver interface {
	Submit(tasks []model.Task)
}

// TaskService owns the task collection together with its sort state, undo
// slot and category filter. Each method is one atomic state transition.
type TaskService struct {
	mu         sync.Mutex
	tasks      []model.Task
	undo       collection.UndoSlot
	sort       collection.SortState
	filter     model.TaskFilter
	categories []string
	lastID     int64

	saver  Saver
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(ctx context.Context, r repo.TaskRepository, saver Saver, logger *zap.Logger, categories []string) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(categories) == 0 {
		categories = model.DefaultCategories
	}

	tasks := r.Load(ctx)
	s := &TaskService{
		tasks:      tasks,
		filter:     model.TaskFilter{Category: model.AllCategories},
		categories: slices.Clone(categories),
		saver:      saver,
		logger:     logger,
		now:        time.Now,
	}
	for _, t := range tasks {
		s.lastID = max(s.lastID, t.ID)
	}

	logger.Info("Tasks loaded", zap.Int("count", len(tasks)))
	return s
}

// nextID is unique even when several tasks are created within one millisecond.
func (s *TaskService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// commit replaces the canonical collection and schedules a save.
func (s *TaskService) commit(tasks []model.Task) {
	s.tasks = tasks
	if s.saver != nil {
		s.saver.Submit(tasks)
	}
}

// AddTask appends a new task. A blank title is ignored and ok is false.
func (s *TaskService) AddTask(title, category, memo string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := model.NewTask(0, title, category, memo)
	if !ok {
		return model.Task{}, false
	}
	t.ID = s.nextID()
	s.commit(collection.Add(s.tasks, t))

	s.logger.Info("Task added", zap.Int64("task_id", t.ID), zap.String("category", t.Category))
	return t, true
}

func (s *TaskService) RotateStatus(id int64) bool {
	return s.apply("rotate", id, collection.RotateStatus)
}

func (s *TaskService) BeginEdit(id int64) bool {
	return s.apply("begin edit", id, collection.BeginEdit)
}

func (s *TaskService) CancelEdit(id int64) bool {
	return s.apply("cancel edit", id, collection.CancelEdit)
}

// SaveEdit updates title and memo. A blank title leaves the title as it was
// but still applies memo; a nil memo keeps the current one.
func (s *TaskService) SaveEdit(id int64, title string, memo *string) bool {
	return s.apply("save edit", id, func(tasks []model.Task, id int64) ([]model.Task, bool) {
		return collection.SaveEdit(tasks, id, title, memo)
	})
}

func (s *TaskService) apply(op string, id int64, fn func([]model.Task, int64) ([]model.Task, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := fn(s.tasks, id)
	if !ok {
		s.logger.Debug("Unknown task id", zap.String("op", op), zap.Int64("task_id", id))
		return false
	}
	s.commit(next)
	s.logger.Debug("Task updated", zap.String("op", op), zap.Int64("task_id", id))
	return true
}

// DeleteTask removes a task and keeps it in the undo slot, replacing whatever
// was there before.
func (s *TaskService) DeleteTask(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed, index, ok := collection.Delete(s.tasks, id)
	if !ok {
		s.logger.Debug("Unknown task id", zap.String("op", "delete"), zap.Int64("task_id", id))
		return false
	}
	s.undo.Record(removed, index)
	s.commit(next)

	s.logger.Info("Task deleted", zap.Int64("task_id", id), zap.Int("index", index))
	return true
}

// UndoDelete brings back the last deleted task at its old position.
func (s *TaskService) UndoDelete() (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.undo.Peek()
	if !ok {
		return model.Task{}, false
	}
	next, _ := s.undo.Restore(s.tasks)
	s.commit(next)

	s.logger.Info("Task restored", zap.Int64("task_id", t.ID))
	return t, true
}

func (s *TaskService) ApplySort(d model.Direction) error {
	d, err := model.ParseDirection(string(d))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = s.sort.Apply(d, s.tasks)
	s.logger.Debug("Sort applied", zap.String("direction", string(d)))
	return nil
}

// SetCategoryFilter accepts AllCategories, DefaultCategory, one of the
// configured categories or any category a task currently carries.
func (s *TaskService) SetCategoryFilter(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCategory(category); err != nil {
		return err
	}
	s.filter = model.TaskFilter{Category: category}
	return nil
}

// VisibleTasks is the sorted, then filtered, view of the collection.
func (s *TaskService) VisibleTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collection.Visible(s.tasks, s.sort, s.filter)
}

// VisibleTasksIn is VisibleTasks with a one-off category in place of the
// current filter. The stored filter is left alone.
func (s *TaskService) VisibleTasksIn(category string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCategory(category); err != nil {
		return nil, err
	}
	return collection.Visible(s.tasks, s.sort, model.TaskFilter{Category: category}), nil
}

func (s *TaskService) checkCategory(category string) error {
	switch {
	case category == model.AllCategories, category == model.DefaultCategory:
		return nil
	case slices.Contains(s.categories, category):
		return nil
	case slices.ContainsFunc(s.tasks, func(t model.Task) bool { return t.Category == category }):
		return nil
	}
	return fmt.Errorf("%w: unknown category %q", ErrValidation, category)
}

func (s *TaskService) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collection.Clone(s.tasks)
}

func (s *TaskService) LastDeleted() (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.Peek()
}

// PendingUndo returns the undo slot together with the index the task was
// removed from.
func (s *TaskService) PendingUndo() (model.Task, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.undo.Peek()
	return t, s.undo.Index(), ok
}

// SeedUndo fills the undo slot without touching the collection. Clients that
// outlive a single process, like the CLI, use it to carry the slot over.
func (s *TaskService) SeedUndo(t model.Task, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo.Record(t, index)
}

func (s *TaskService) SortState() (model.Direction, []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort.Direction(), s.sort.Order()
}

func (s *TaskService) CategoryFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Category
}

func (s *TaskService) Categories() []string {
	return slices.Clone(s.categories)
}
