package model

import (
	"math"
	"strconv"
	"strings"
)

// UntitledTask replaces a stored title that is blank.
const UntitledTask = "(untitled)"

// Record is one stored task as read back from storage, before any field is
// trusted. Earlier releases wrote "text" for the title and "isEditing" for
// the editing flag; both are still accepted.
type Record map[string]any

// Task repairs r into a valid task one field at a time, so a single bad field
// never costs the whole task:
//   - a missing or non-numeric id becomes 0
//   - the title falls back to "text", then to UntitledTask
//   - an unknown or non-string status becomes StatusNotStarted
//   - a missing or non-string category becomes DefaultCategory
//   - a non-string memo becomes ""
//   - editing is always false
//
// ok is false only when the record has neither an id nor a title.
func (r Record) Task() (Task, bool) {
	id := r.number("id")
	title := ClampTitle(r.str("title"))
	if title == "" {
		title = ClampTitle(r.str("text"))
	}
	if title == "" {
		if id == 0 {
			return Task{}, false
		}
		title = UntitledTask
	}

	status := Status(r.str("status"))
	if !status.Valid() {
		status = StatusNotStarted
	}

	return Task{
		ID:       id,
		Title:    title,
		Status:   status,
		Category: CategoryOrDefault(r.str("category")),
		Memo:     r.str("memo"),
		Editing:  false,
	}, true
}

func (r Record) str(key string) string {
	s, _ := r[key].(string)
	return s
}

func (r Record) number(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
	case int64:
		return v
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return 0
}
