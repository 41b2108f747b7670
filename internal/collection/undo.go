package collection

import "github.com/BuzzLyutic/checklist/internal/model"

// UndoSlot keeps the most recent deletion only. A new deletion overwrites it.
type UndoSlot struct {
	task  model.Task
	index int
	full  bool
}

func (u *UndoSlot) Record(t model.Task, index int) {
	u.task = t
	u.index = index
	u.full = true
}

// Peek returns the task waiting to be restored, if any.
func (u *UndoSlot) Peek() (model.Task, bool) {
	return u.task, u.full
}

// Index is the position the pending task was removed from.
func (u *UndoSlot) Index() int {
	return u.index
}

// Restore reinserts the saved task at its old index, or at the end when the
// collection has shrunk below it. The slot is always empty afterwards.
func (u *UndoSlot) Restore(tasks []model.Task) ([]model.Task, bool) {
	if !u.full {
		return tasks, false
	}
	t, at := u.task, min(u.index, len(tasks))
	u.Clear()

	next := make([]model.Task, 0, len(tasks)+1)
	next = append(next, tasks[:at]...)
	next = append(next, t)
	next = append(next, tasks[at:]...)
	return next, true
}

func (u *UndoSlot) Clear() {
	*u = UndoSlot{}
}
