// Package collection holds the pure operations over a task snapshot. Every
// function returns a new slice and leaves its input untouched.
package collection

import (
	"strings"

	"github.com/BuzzLyutic/checklist/internal/model"
)

func Add(tasks []model.Task, t model.Task) []model.Task {
	next := make([]model.Task, 0, len(tasks)+1)
	next = append(next, tasks...)
	return append(next, t)
}

// IndexOf returns the position of the first task with the given id, or -1.
func IndexOf(tasks []model.Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// update applies fn to the first task with the given id. changed is false
// when no task matched.
func update(tasks []model.Task, id int64, fn func(*model.Task)) ([]model.Task, bool) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return tasks, false
	}
	next := Clone(tasks)
	fn(&next[i])
	return next, true
}

func RotateStatus(tasks []model.Task, id int64) ([]model.Task, bool) {
	return update(tasks, id, func(t *model.Task) {
		t.Status = t.Status.Next()
	})
}

func BeginEdit(tasks []model.Task, id int64) ([]model.Task, bool) {
	return update(tasks, id, func(t *model.Task) {
		t.Editing = true
	})
}

func CancelEdit(tasks []model.Task, id int64) ([]model.Task, bool) {
	return update(tasks, id, func(t *model.Task) {
		t.Editing = false
	})
}

// SaveEdit stores an edit. A blank title keeps the old one while the memo is
// still applied; a nil memo keeps the current memo.
func SaveEdit(tasks []model.Task, id int64, title string, memo *string) ([]model.Task, bool) {
	return update(tasks, id, func(t *model.Task) {
		if trimmed := model.ClampTitle(title); trimmed != "" {
			t.Title = trimmed
		}
		if memo != nil {
			t.Memo = strings.TrimSpace(*memo)
		}
		t.Editing = false
	})
}

// Delete removes the first task with the given id and reports what was
// removed and where it sat.
func Delete(tasks []model.Task, id int64) ([]model.Task, model.Task, int, bool) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return tasks, model.Task{}, -1, false
	}
	removed := tasks[i]
	next := make([]model.Task, 0, len(tasks)-1)
	next = append(next, tasks[:i]...)
	next = append(next, tasks[i+1:]...)
	return next, removed, i, true
}

func Clone(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	next := make([]model.Task, len(tasks))
	copy(next, tasks)
	return next
}
