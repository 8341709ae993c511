package mongo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

func TestDocumentConversion_RoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	due := created.Add(48 * time.Hour)
	in := domain.Snapshot{
		Users: []domain.User{{
			ID:           "u1",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$hash",
			Role:         domain.RoleUser,
			Profile:      domain.Profile{Name: "Alice", Theme: "light"},
		}},
		Tasks: []domain.Task{{
			ID:        "t1",
			UserID:    "u1",
			Title:     "Write report",
			DueDate:   &due,
			Priority:  domain.PriorityHigh,
			Category:  "Work",
			Recurring: map[string]any{"every": "week", "interval": 2},
			Subtasks:  []domain.Subtask{{ID: "s1", Title: "Outline", CreatedAt: created}},
			CreatedAt: created,
			UpdatedAt: created,
		}},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	doc, err := toDocument(data)
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	if doc[0].Key != "_id" || doc[0].Value != snapshotID {
		t.Fatalf("expected fixed _id first, got %+v", doc[0])
	}

	out, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	var got domain.Snapshot
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal %s: %v", out, err)
	}

	if len(got.Users) != 1 || got.Users[0].PasswordHash != "$2a$10$hash" || got.Users[0].LastLogin != nil {
		t.Fatalf("unexpected users: %+v", got.Users)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got.Tasks))
	}
	task := got.Tasks[0]
	if task.DueDate == nil || !task.DueDate.Equal(due) || !task.CreatedAt.Equal(created) {
		t.Fatalf("timestamps changed: %+v", task)
	}
	if len(task.Subtasks) != 1 || task.Subtasks[0].ID != "s1" {
		t.Fatalf("unexpected subtasks: %+v", task.Subtasks)
	}
	rec, ok := task.Recurring.(map[string]any)
	if !ok || rec["every"] != "week" || rec["interval"] != float64(2) {
		t.Fatalf("unexpected recurring: %#v", task.Recurring)
	}
}

func TestDocumentConversion_EmptyDocument(t *testing.T) {
	doc, err := toDocument([]byte(`{"users":[],"tasks":[]}`))
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	out, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	var got map[string][]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal %s: %v", out, err)
	}
	if got["users"] == nil || got["tasks"] == nil || len(got["users"])+len(got["tasks"]) != 0 {
		t.Fatalf("expected empty collections, got %s", out)
	}
}

func TestToDocument_RejectsMalformedJSON(t *testing.T) {
	if _, err := toDocument([]byte(`{"users":`)); err == nil {
		t.Fatalf("expected error")
	}
}
