// Package query filters and orders a user's tasks. Every function is pure: the
// input slice is never reordered or modified.
package query

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

// Filter narrows a task list. Zero values mean "no filter"; set fields combine with AND.
type Filter struct {
	Category  string
	Priority  domain.Priority
	Completed *bool
}

// Match reports whether t satisfies every set field of f.
func (f Filter) Match(t domain.Task) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	return true
}

// Sort orders a task list by one field. An empty Field keeps insertion order.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort builds a Sort from the sort_by/order query parameters. Any order
// other than "desc" sorts ascending.
func ParseSort(field, order string) (Sort, error) {
	s := Sort{Field: strings.TrimSpace(field), Desc: strings.EqualFold(order, "desc")}
	if err := s.Validate(); err != nil {
		return Sort{}, err
	}
	return s, nil
}

// Validate rejects fields that have no defined ordering.
func (s Sort) Validate() error {
	if s.Field == "" {
		return nil
	}
	if _, ok := comparators[s.Field]; !ok {
		return domain.ErrInvalidSortField
	}
	return nil
}

type comparator func(a, b domain.Task, desc bool) int

var comparators = map[string]comparator{
	"dueDate":     compareDueDate,
	"createdAt":   ordered(func(a, b domain.Task) int { return a.CreatedAt.Compare(b.CreatedAt) }),
	"updatedAt":   ordered(func(a, b domain.Task) int { return a.UpdatedAt.Compare(b.UpdatedAt) }),
	"title":       ordered(func(a, b domain.Task) int { return strings.Compare(a.Title, b.Title) }),
	"description": ordered(func(a, b domain.Task) int { return strings.Compare(a.Description, b.Description) }),
	"category":    ordered(func(a, b domain.Task) int { return strings.Compare(a.Category, b.Category) }),
	"priority":    ordered(func(a, b domain.Task) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) }),
	"completed":   ordered(func(a, b domain.Task) int { return compareBool(a.Completed, b.Completed) }),
	"id":          ordered(func(a, b domain.Task) int { return strings.Compare(a.ID, b.ID) }),
	"userId":      ordered(func(a, b domain.Task) int { return strings.Compare(a.UserID, b.UserID) }),
	"recurring":   ordered(func(a, b domain.Task) int { return strings.Compare(jsonText(a.Recurring), jsonText(b.Recurring)) }),
	"subtasks":    ordered(func(a, b domain.Task) int { return strings.Compare(jsonText(a.Subtasks), jsonText(b.Subtasks)) }),
}

// Apply returns the tasks owned by userID that match f, ordered by s. Ties are
// broken by createdAt then id, ascending, so the result is deterministic.
func Apply(tasks []domain.Task, userID string, f Filter, s Sort) ([]domain.Task, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID == userID && f.Match(t) {
			out = append(out, t)
		}
	}
	if s.Field == "" {
		return out, nil
	}

	byField := comparators[s.Field]
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		if c := byField(a, b, s.Desc); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func ordered(fn func(a, b domain.Task) int) comparator {
	return func(a, b domain.Task, desc bool) int {
		if desc {
			return fn(b, a)
		}
		return fn(a, b)
	}
}

// compareDueDate places tasks without a due date last in both directions.
func compareDueDate(a, b domain.Task, desc bool) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	c := a.DueDate.Compare(*b.DueDate)
	if desc {
		return -c
	}
	return c
}

// jsonText orders free-form values by their encoded form. Values that cannot
// be encoded sort as null.
func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
