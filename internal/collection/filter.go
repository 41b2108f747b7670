package collection

import "github.com/BuzzLyutic/checklist/internal/model"

// Filter keeps the tasks matching f, preserving their order.
func Filter(tasks []model.Task, f model.TaskFilter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Visible is the sequence handed to a display: sorted first, then filtered.
func Visible(tasks []model.Task, s SortState, f model.TaskFilter) []model.Task {
	return Filter(s.Materialize(tasks), f)
}
