package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smarttodo/tasks-api/internal/api/middleware"
	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/query"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, email, password, name string) (string, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, email, password, name string) (string, error) {
	return s.signupFn(ctx, email, password, name)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	profileFn func(ctx context.Context, userID string) (*domain.User, error)
	updateFn  func(ctx context.Context, userID, name, theme string) (*domain.User, error)
	resetFn   func(ctx context.Context, email string) error
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID, name, theme string) (*domain.User, error) {
	return s.updateFn(ctx, userID, name, theme)
}

func (s *stubUserService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.resetFn(ctx, email)
}

type stubTaskService struct {
	listFn          func(ctx context.Context, userID string, f query.Filter, s query.Sort) ([]domain.Task, error)
	createFn        func(ctx context.Context, userID string, in domain.CreateTaskInput) (*domain.Task, error)
	updateFn        func(ctx context.Context, userID, taskID string, p domain.TaskPatch) (*domain.Task, error)
	deleteFn        func(ctx context.Context, userID, taskID string) error
	addSubtaskFn    func(ctx context.Context, userID, taskID, title string) (*domain.Subtask, error)
	updateSubtaskFn func(ctx context.Context, userID, subtaskID string, p domain.SubtaskPatch) (*domain.Subtask, error)
	deleteSubtaskFn func(ctx context.Context, userID, subtaskID string) error
}

func (s *stubTaskService) ListTasks(ctx context.Context, userID string, f query.Filter, srt query.Sort) ([]domain.Task, error) {
	return s.listFn(ctx, userID, f, srt)
}

func (s *stubTaskService) CreateTask(ctx context.Context, userID string, in domain.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, userID, taskID string, p domain.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, userID, taskID, p)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.deleteFn(ctx, userID, taskID)
}

func (s *stubTaskService) AddSubtask(ctx context.Context, userID, taskID, title string) (*domain.Subtask, error) {
	return s.addSubtaskFn(ctx, userID, taskID, title)
}

func (s *stubTaskService) UpdateSubtask(ctx context.Context, userID, subtaskID string, p domain.SubtaskPatch) (*domain.Subtask, error) {
	return s.updateSubtaskFn(ctx, userID, subtaskID, p)
}

func (s *stubTaskService) DeleteSubtask(ctx context.Context, userID, subtaskID string) error {
	return s.deleteSubtaskFn(ctx, userID, subtaskID)
}

type stubAnalyticsService struct {
	activityFn func(ctx context.Context, userID string) (*domain.UserActivity, error)
	systemFn   func(ctx context.Context) (*domain.SystemAnalytics, error)
	usersFn    func(ctx context.Context) ([]domain.UserStats, error)
}

func (s *stubAnalyticsService) UserActivity(ctx context.Context, userID string) (*domain.UserActivity, error) {
	return s.activityFn(ctx, userID)
}

func (s *stubAnalyticsService) System(ctx context.Context) (*domain.SystemAnalytics, error) {
	return s.systemFn(ctx)
}

func (s *stubAnalyticsService) UsersWithStats(ctx context.Context) ([]domain.UserStats, error) {
	return s.usersFn(ctx)
}

// newRequestContext builds an echo context for a JSON request. A non-empty
// userID is injected the way the Auth middleware does it.
func newRequestContext(t *testing.T, method, target string, body io.Reader, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, domain.RoleUser)
	}
	return c, rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}
