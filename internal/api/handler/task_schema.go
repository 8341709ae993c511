package handler

import (
	"encoding/json"
	"time"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

// messageResponse is returned by operations that only acknowledge.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"     example:"2026-11-01"`
	Priority    string `json:"priority"    example:"medium"`
	Category    string `json:"category"    example:"work"`
	Recurring   any    `json:"recurring"   swaggertype:"object"`
}

// updateTaskRequest documents the PUT body. The handler decodes the body by
// key so that an explicit null can clear dueDate or recurring.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
	Recurring   any     `json:"recurring" swaggertype:"object"`
}

type createSubtaskRequest struct {
	Title string `json:"title"`
}

type updateSubtaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

var errInvalidDueDate = domain.NewValidationError("dueDate", "Due date must be an ISO 8601 date")

// parseDueDate turns the wire value into a UTC instant. Blank means no due date.
func parseDueDate(raw string) (*time.Time, error) {
	due, ok := domain.ParseDueDate(raw)
	if !ok {
		return nil, errInvalidDueDate
	}
	return due, nil
}

func (r createTaskRequest) toInput() (domain.CreateTaskInput, error) {
	due, err := parseDueDate(r.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}
	return domain.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Priority:    domain.Priority(r.Priority),
		Category:    r.Category,
		Recurring:   r.Recurring,
	}, nil
}

// decodeTaskPatch maps the keys present in body onto a TaskPatch. Keys outside
// the updatable set are ignored.
func decodeTaskPatch(body map[string]json.RawMessage) (domain.TaskPatch, error) {
	var p domain.TaskPatch

	for key, raw := range body {
		isNull := string(raw) == "null"

		switch key {
		case "title":
			if isNull {
				return p, domain.ErrTitleRequired
			}
			if err := decodeField(key, raw, &p.Title); err != nil {
				return p, err
			}
		case "description":
			s := ""
			if !isNull {
				if err := decodeField(key, raw, &s); err != nil {
					return p, err
				}
			}
			p.Description = &s
		case "dueDate":
			p.DueDateSet = true
			if isNull {
				continue
			}
			var s string
			if err := decodeField(key, raw, &s); err != nil {
				return p, err
			}
			due, err := parseDueDate(s)
			if err != nil {
				return p, err
			}
			p.DueDate = due
		case "priority":
			if isNull {
				return p, domain.ErrInvalidPriority
			}
			var s string
			if err := decodeField(key, raw, &s); err != nil {
				return p, domain.ErrInvalidPriority
			}
			pr := domain.Priority(s)
			p.Priority = &pr
		case "category":
			if isNull {
				continue
			}
			if err := decodeField(key, raw, &p.Category); err != nil {
				return p, err
			}
		case "completed":
			if isNull {
				continue
			}
			if err := decodeField(key, raw, &p.Completed); err != nil {
				return p, err
			}
		case "recurring":
			p.RecurringSet = true
			if isNull {
				continue
			}
			if err := decodeField(key, raw, &p.Recurring); err != nil {
				return p, err
			}
		}
	}

	return p, nil
}

func decodeField(key string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.NewValidationError(key, "Invalid value for "+key)
	}
	return nil
}

// --- Response types ---

type profileResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Profile   domain.Profile `json:"profile"`
	LastLogin *time.Time     `json:"lastLogin"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{ID: u.ID, Email: u.Email, Profile: u.Profile, LastLogin: u.LastLogin}
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
