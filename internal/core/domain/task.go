package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const DefaultCategory = "default"

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities low < medium < high. Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// Subtask is owned by exactly one Task. Its ID is unique across the whole document.
type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is the core aggregate root. UserID never changes after creation.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	Recurring   any        `json:"recurring"`
	Subtasks    []Subtask  `json:"subtasks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DueDateLayouts are tried in order when reading a due date.
var DueDateLayouts = []string{time.RFC3339Nano, time.DateOnly}

// ParseDueDate reads an RFC 3339 timestamp or a calendar date as a UTC instant.
// A blank value yields nil and ok; an unrecognised one yields nil and !ok.
func ParseDueDate(raw string) (due *time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	for _, layout := range DueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}

// UnmarshalJSON reads a stored task. Documents written by older servers may
// hold a date-only or unparseable dueDate; anything unreadable becomes no due date.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	aux := struct {
		*plain
		DueDate json.RawMessage `json:"dueDate"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.DueDate = nil
	var raw string
	if err := json.Unmarshal(aux.DueDate, &raw); err == nil {
		t.DueDate, _ = ParseDueDate(raw)
	}
	return nil
}

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Category    string
	Recurring   any
}

// TaskPatch lists the fields an update may touch. A nil pointer leaves the
// field unchanged. DueDateSet and RecurringSet distinguish "clear" from "absent".
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	DueDateSet   bool
	Priority     *Priority
	Category     *string
	Completed    *bool
	Recurring    any
	RecurringSet bool
}

// SubtaskPatch is a partial subtask update.
type SubtaskPatch struct {
	Title     *string
	Completed *bool
}

// Validate rejects a present-but-blank title and unknown priorities.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Apply merges the allow-listed fields of p onto t. Identity, ownership,
// subtasks and timestamps are never touched.
func (t *Task) Apply(p TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDateSet {
		t.DueDate = p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.RecurringSet {
		t.Recurring = p.Recurring
	}
}

// Validate rejects a present-but-blank subtask title.
func (p SubtaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrSubtaskTitleRequired
	}
	return nil
}

// Apply merges p onto s.
func (s *Subtask) Apply(p SubtaskPatch) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
}
