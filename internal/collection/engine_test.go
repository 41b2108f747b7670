package collection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/checklist/internal/model"
)

func makeTask(id int64, title string, status model.Status, category string) model.Task {
	return model.Task{ID: id, Title: title, Status: status, Category: category}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestAdd_AppendsWithoutTouchingInput(t *testing.T) {
	orig := []model.Task{makeTask(1, "a", model.StatusNotStarted, "")}
	next := Add(orig, makeTask(2, "b", model.StatusNotStarted, ""))

	assert.Equal(t, []int64{1, 2}, ids(next))
	assert.Len(t, orig, 1)
}

func TestRotateStatus(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		want model.Status
	}{
		{"not started to in progress", model.StatusNotStarted, model.StatusInProgress},
		{"in progress to completed", model.StatusInProgress, model.StatusCompleted},
		{"completed to on hold", model.StatusCompleted, model.StatusOnHold},
		{"on hold wraps", model.StatusOnHold, model.StatusNotStarted},
		{"unknown goes to first", model.Status("bogus"), model.StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := []model.Task{makeTask(1, "a", tt.from, "c")}
			next, ok := RotateStatus(tasks, 1)
			require.True(t, ok)
			assert.Equal(t, tt.want, next[0].Status)
			assert.Equal(t, tt.from, tasks[0].Status, "input must not change")
		})
	}
}

func TestRotateStatus_PeriodFour(t *testing.T) {
	for _, s := range model.Statuses {
		tasks := []model.Task{makeTask(7, "x", s, "c")}
		for i := 0; i < 4; i++ {
			tasks, _ = RotateStatus(tasks, 7)
		}
		assert.Equal(t, s, tasks[0].Status)
	}
}

func TestRotateStatus_UnknownID(t *testing.T) {
	tasks := []model.Task{makeTask(1, "a", model.StatusNotStarted, "")}
	next, ok := RotateStatus(tasks, 99)
	assert.False(t, ok)
	assert.Equal(t, tasks, next)
}

func TestEditToggle(t *testing.T) {
	tasks := []model.Task{makeTask(1, "a", model.StatusNotStarted, "")}

	next, ok := BeginEdit(tasks, 1)
	require.True(t, ok)
	assert.True(t, next[0].Editing)
	assert.Equal(t, "a", next[0].Title)

	next, ok = CancelEdit(next, 1)
	require.True(t, ok)
	assert.False(t, next[0].Editing)
}

func TestSaveEdit(t *testing.T) {
	memo := func(s string) *string { return &s }

	tests := []struct {
		name      string
		title     string
		memo      *string
		wantTitle string
		wantMemo  string
	}{
		{"title and memo", "  new title ", memo("new memo"), "new title", "new memo"},
		{"empty title keeps title", "", memo("only memo"), "old", "only memo"},
		{"whitespace title keeps title", "   ", memo("only memo"), "old", "only memo"},
		{"nil memo keeps memo", "renamed", nil, "renamed", "old memo"},
		{"blank title and nil memo", " ", nil, "old", "old memo"},
		{"long title is clipped", strings.Repeat("x", 130), nil, strings.Repeat("x", 100), "old memo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := []model.Task{{ID: 1, Title: "old", Memo: "old memo", Editing: true}}
			next, ok := SaveEdit(tasks, 1, tt.title, tt.memo)
			require.True(t, ok)
			assert.Equal(t, tt.wantTitle, next[0].Title)
			assert.Equal(t, tt.wantMemo, next[0].Memo)
			assert.False(t, next[0].Editing)
		})
	}
}

func TestDelete(t *testing.T) {
	tasks := []model.Task{
		makeTask(1, "a", model.StatusNotStarted, ""),
		makeTask(2, "b", model.StatusNotStarted, ""),
		makeTask(3, "c", model.StatusNotStarted, ""),
	}

	next, removed, index, ok := Delete(tasks, 2)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 3}, ids(next))
	assert.Equal(t, int64(2), removed.ID)
	assert.Equal(t, 1, index)
	assert.Len(t, tasks, 3)

	_, _, _, ok = Delete(next, 2)
	assert.False(t, ok)
}
