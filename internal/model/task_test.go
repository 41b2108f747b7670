package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		category     string
		memo         string
		wantOK       bool
		wantTitle    string
		wantCategory string
		wantMemo     string
	}{
		{"plain", "Defeat the dragon", "ボス攻略", "bring potions", true, "Defeat the dragon", "ボス攻略", "bring potions"},
		{"trimmed", "  spaced  ", "サブクエスト", "  memo ", true, "spaced", "サブクエスト", "memo"},
		{"empty", "", "サブクエスト", "", false, "", "", ""},
		{"whitespace only", " \t\n ", "サブクエスト", "", false, "", "", ""},
		{"default category", "title", "", "", true, "title", DefaultCategory, ""},
		{"exactly 100", strings.Repeat("あ", 100), "x", "", true, strings.Repeat("あ", 100), "x", ""},
		{"clipped to 100 characters", strings.Repeat("い", 120), "x", "", true, strings.Repeat("い", 100), "x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, ok := NewTask(42, tt.title, tt.category, tt.memo)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, int64(42), task.ID)
			assert.Equal(t, tt.wantTitle, task.Title)
			assert.Equal(t, tt.wantCategory, task.Category)
			assert.Equal(t, tt.wantMemo, task.Memo)
			assert.Equal(t, StatusNotStarted, task.Status)
			assert.False(t, task.Editing)
		})
	}
}

func TestClampTitle_TrimsBeforeClipping(t *testing.T) {
	in := "   " + strings.Repeat("a", 100) + "   "
	assert.Equal(t, strings.Repeat("a", 100), ClampTitle(in))
}

func TestTaskFilter_Matches(t *testing.T) {
	task := Task{Category: "サブクエスト"}
	assert.True(t, TaskFilter{}.Matches(task))
	assert.True(t, TaskFilter{Category: AllCategories}.Matches(task))
	assert.True(t, TaskFilter{Category: "サブクエスト"}.Matches(task))
	assert.False(t, TaskFilter{Category: "メインクエスト"}.Matches(task))
	assert.True(t, TaskFilter{Category: DefaultCategory}.Matches(Task{}))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, 0, StatusNotStarted.Rank())
	assert.Equal(t, 3, StatusOnHold.Rank())
	assert.Equal(t, -1, Status("done").Rank())
	assert.False(t, Status("").Valid())
	assert.Equal(t, StatusNotStarted, StatusOnHold.Next())
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"asc": Ascending, "desc": Descending, "": DirectionNone, "none": DirectionNone} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
