package model

import (
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is counted in characters, not bytes.
const MaxTitleLength = 100

const (
	DefaultCategory = "Uncategorized"
	AllCategories   = "ALL"
)

// DefaultCategories is the stock category vocabulary.
var DefaultCategories = []string{
	"メインクエスト",
	"サブクエスト",
	"装備・アイテム収集",
	"レベル上げ・育成",
	"素材集め",
	"ボス攻略",
	"その他",
}

type Task struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Status   Status `json:"status"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
	Editing  bool   `json:"editing"`
}

// NewTask builds a fresh task. ok is false when the title is blank.
func NewTask(id int64, title, category, memo string) (Task, bool) {
	title = ClampTitle(title)
	if title == "" {
		return Task{}, false
	}
	return Task{
		ID:       id,
		Title:    title,
		Status:   StatusNotStarted,
		Category: CategoryOrDefault(strings.TrimSpace(category)),
		Memo:     strings.TrimSpace(memo),
	}, true
}

// ClampTitle trims surrounding whitespace and clips the result to MaxTitleLength characters.
func ClampTitle(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}
	return string([]rune(s)[:MaxTitleLength])
}

func CategoryOrDefault(category string) string {
	if category == "" {
		return DefaultCategory
	}
	return category
}

type TaskFilter struct {
	Category string
}

// Matches reports whether t belongs to the filtered view.
func (f TaskFilter) Matches(t Task) bool {
	if f.Category == "" || f.Category == AllCategories {
		return true
	}
	return CategoryOrDefault(t.Category) == f.Category
}
