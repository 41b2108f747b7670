package collection

import (
	"slices"

	"github.com/BuzzLyutic/checklist/internal/model"
)

// SortState is either unsorted (zero value) or sorted with a frozen id order.
// The order is computed once per Apply; later status changes do not move tasks.
type SortState struct {
	direction model.Direction
	order     []int64
}

func (s SortState) Sorted() bool {
	return s.direction != model.DirectionNone
}

func (s SortState) Direction() model.Direction {
	return s.direction
}

// Order returns a copy of the frozen id order, nil when unsorted.
func (s SortState) Order() []int64 {
	return slices.Clone(s.order)
}

// Apply returns the state after choosing direction d over tasks.
// DirectionNone drops any frozen order.
func (s SortState) Apply(d model.Direction, tasks []model.Task) SortState {
	if d == model.DirectionNone {
		return SortState{}
	}

	base := s.resolve(tasks)
	slices.SortStableFunc(base, func(a, b model.Task) int {
		diff := a.Status.Rank() - b.Status.Rank()
		if d == model.Descending {
			return -diff
		}
		return diff
	})

	order := make([]int64, len(base))
	for i, t := range base {
		order[i] = t.ID
	}
	return SortState{direction: d, order: order}
}

// Materialize lays tasks out in the frozen order. Tasks missing from the
// order (added after the sort) follow in canonical order.
func (s SortState) Materialize(tasks []model.Task) []model.Task {
	if !s.Sorted() {
		return Clone(tasks)
	}
	return s.resolve(tasks)
}

// resolve maps the frozen ids back to current task values, dropping ids that
// are gone, then appends the tasks the order does not know about.
func (s SortState) resolve(tasks []model.Task) []model.Task {
	byID := make(map[int64]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	out := make([]model.Task, 0, len(tasks))
	seen := make(map[int64]bool, len(s.order))
	for _, id := range s.order {
		seen[id] = true
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	for _, t := range tasks {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}
