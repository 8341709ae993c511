package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/core/service"
	"github.com/smarttodo/tasks-api/internal/infrastructure/docstore"
)

const testSecret = "router-test-secret"

type testServer struct {
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	store := docstore.NewStore(docstore.NewMemoryBackend(), log)
	userRepo := docstore.NewUserRepository(store)
	taskRepo := docstore.NewTaskRepository(store)

	auth := service.NewAuthService(userRepo, testSecret, time.Hour)
	if _, err := auth.EnsureAdmin(context.Background(), "admin@smarttodo.com", "admin123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	e := NewRouter(Dependencies{
		AuthService:      auth,
		UserService:      service.NewUserService(userRepo, log),
		TaskService:      service.NewTaskService(taskRepo, log),
		AnalyticsService: service.NewAnalyticsService(store, log),
		Store:            store,
		JWTSecret:        testSecret,
		Logger:           log,
		Registerer:       reg,
		Gatherer:         reg,
	})
	return &testServer{e: e}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, code, body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: bad body %s", email, body)
	}
	return resp.Token
}

func (s *testServer) signup(t *testing.T, email, name string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/api/users/signup", "",
		`{"email":"`+email+`","password":"pw","name":"`+name+`"}`)
	if code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %s", email, code, body)
	}
	return s.login(t, email, "pw")
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("invalid json %s: %v", body, err)
	}
	return v
}

func TestRouter_TaskLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")

	code, body := s.do(t, http.MethodPost, "/api/tasks", alice, `{"title":"Write report","category":"Work","priority":"high"}`)
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", code, body)
	}
	task := decode[map[string]any](t, body)
	taskID, _ := task["id"].(string)
	if taskID == "" || task["completed"] != false || task["recurring"] != nil {
		t.Fatalf("unexpected created task: %+v", task)
	}

	code, body = s.do(t, http.MethodPost, "/api/tasks/"+taskID+"/subtasks", alice, `{"title":"Outline"}`)
	if code != http.StatusCreated {
		t.Fatalf("add subtask: expected 201, got %d: %s", code, body)
	}
	subID, _ := decode[map[string]any](t, body)["id"].(string)

	code, body = s.do(t, http.MethodPut, "/api/tasks/subtasks/"+subID, alice, `{"completed":true}`)
	if code != http.StatusOK {
		t.Fatalf("update subtask: expected 200, got %d: %s", code, body)
	}

	code, body = s.do(t, http.MethodPut, "/api/tasks/"+taskID, alice, `{"completed":true,"userId":"someone-else"}`)
	if code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", code, body)
	}
	updated := decode[map[string]any](t, body)
	if updated["completed"] != true || updated["userId"] == "someone-else" {
		t.Fatalf("unexpected updated task: %+v", updated)
	}

	code, body = s.do(t, http.MethodGet, "/api/tasks?completed=true&category=Work", alice, "")
	if code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", code, body)
	}
	tasks := decode[[]map[string]any](t, body)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	subtasks, _ := tasks[0]["subtasks"].([]any)
	if len(subtasks) != 1 || subtasks[0].(map[string]any)["completed"] != true {
		t.Fatalf("unexpected subtasks: %+v", tasks[0]["subtasks"])
	}

	code, _ = s.do(t, http.MethodDelete, "/api/tasks/subtasks/"+subID, alice, "")
	if code != http.StatusOK {
		t.Fatalf("delete subtask: expected 200, got %d", code)
	}
	code, body = s.do(t, http.MethodDelete, "/api/tasks/"+taskID, alice, "")
	if code != http.StatusOK || decode[map[string]string](t, body)["message"] != "Task deleted successfully" {
		t.Fatalf("delete: unexpected %d %s", code, body)
	}
	code, body = s.do(t, http.MethodDelete, "/api/tasks/"+taskID, alice, "")
	if code != http.StatusNotFound || decode[map[string]string](t, body)["message"] != "Task not found" {
		t.Fatalf("second delete: unexpected %d %s", code, body)
	}
}

func TestRouter_CrossUserAccessLooksLikeNotFound(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")
	bob := s.signup(t, "bob@example.com", "Bob")

	_, body := s.do(t, http.MethodPost, "/api/tasks", alice, `{"title":"Private"}`)
	taskID, _ := decode[map[string]any](t, body)["id"].(string)

	code, body := s.do(t, http.MethodPut, "/api/tasks/"+taskID, bob, `{"title":"Hijacked"}`)
	if code != http.StatusNotFound || decode[map[string]string](t, body)["message"] != "Task not found" {
		t.Fatalf("expected 404 Task not found, got %d %s", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/api/tasks", bob, "")
	if code != http.StatusOK || len(decode[[]any](t, body)) != 0 {
		t.Fatalf("bob must see no tasks, got %d %s", code, body)
	}
}

func TestRouter_ValidationMessages(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")

	cases := []struct {
		method, path, body string
		want               string
	}{
		{http.MethodPost, "/api/tasks", `{"description":"no title"}`, "Title is required"},
		{http.MethodPost, "/api/tasks", `{"title":"x","priority":"urgent"}`, "Priority must be one of: low, medium, high"},
		{http.MethodGet, "/api/tasks?sort_by=bogus", "", "Invalid sort field"},
		{http.MethodPost, "/api/users/signup", `{"email":"carol@example.com"}`, "Email, password, and name are required"},
		{http.MethodPost, "/api/users/signup", `{"email":"alice@example.com","password":"pw","name":"A"}`, "Email already registered"},
		{http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`, "Email and password are required"},
	}
	for _, tc := range cases {
		code, body := s.do(t, tc.method, tc.path, alice, tc.body)
		if code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d: %s", tc.method, tc.path, code, body)
		}
		if got := decode[map[string]string](t, body)["message"]; got != tc.want {
			t.Fatalf("%s %s: expected %q, got %q", tc.method, tc.path, tc.want, got)
		}
	}
}

func TestRouter_AuthAndRBAC(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")

	code, body := s.do(t, http.MethodGet, "/api/tasks", "", "")
	if code != http.StatusUnauthorized || decode[map[string]string](t, body)["message"] != "No token provided" {
		t.Fatalf("expected 401 No token provided, got %d %s", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/api/tasks", "garbage", "")
	if code != http.StatusUnauthorized || decode[map[string]string](t, body)["message"] != "Invalid or expired token" {
		t.Fatalf("expected 401 Invalid or expired token, got %d %s", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/api/admin/analytics", alice, "")
	if code != http.StatusForbidden || decode[map[string]string](t, body)["message"] != "Access forbidden: Admin privileges required" {
		t.Fatalf("expected 403, got %d %s", code, body)
	}

	code, body = s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"nope"}`)
	if code != http.StatusUnauthorized || decode[map[string]string](t, body)["message"] != "Invalid email or password" {
		t.Fatalf("expected 401 Invalid email or password, got %d %s", code, body)
	}
}

func TestRouter_AdminReports(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")
	admin := s.login(t, "admin@smarttodo.com", "admin123")

	_, body := s.do(t, http.MethodPost, "/api/tasks", alice, `{"title":"Ship it","category":"Work"}`)
	taskID, _ := decode[map[string]any](t, body)["id"].(string)
	s.do(t, http.MethodPut, "/api/tasks/"+taskID, alice, `{"completed":true}`)

	code, body := s.do(t, http.MethodGet, "/api/admin/analytics", admin, "")
	if code != http.StatusOK {
		t.Fatalf("analytics: expected 200, got %d %s", code, body)
	}
	report := decode[map[string]any](t, body)
	if report["totalUsers"] != float64(2) || report["totalTasks"] != float64(1) || report["completionRate"] != float64(1) {
		t.Fatalf("unexpected analytics: %+v", report)
	}
	if report["averageTasksPerUser"] != 0.5 {
		t.Fatalf("expected averageTasksPerUser 0.5, got %v", report["averageTasksPerUser"])
	}

	code, body = s.do(t, http.MethodGet, "/api/admin/users", admin, "")
	if code != http.StatusOK || strings.Contains(string(body), "passwordHash") {
		t.Fatalf("users: unexpected %d %s", code, body)
	}
	if len(decode[[]any](t, body)) != 2 {
		t.Fatalf("expected 2 users, got %s", body)
	}

	code, body = s.do(t, http.MethodGet, "/api/admin/users/nobody/activity", admin, "")
	if code != http.StatusNotFound || decode[map[string]string](t, body)["message"] != "User not found" {
		t.Fatalf("expected 404 User not found, got %d %s", code, body)
	}
}

func TestRouter_Profile(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")

	code, body := s.do(t, http.MethodPut, "/api/users/profile", alice, `{"theme":"dark"}`)
	if code != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d %s", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/api/users/profile", alice, "")
	if code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d %s", code, body)
	}
	profile := decode[map[string]any](t, body)
	p, _ := profile["profile"].(map[string]any)
	if p["name"] != "Alice" || p["theme"] != "dark" || profile["lastLogin"] == nil {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, leaked := profile["passwordHash"]; leaked {
		t.Fatalf("profile leaked credentials: %+v", profile)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	if code, body := s.do(t, http.MethodGet, "/health", "", ""); code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d %s", code, body)
	}
	code, body := s.do(t, http.MethodGet, "/health/ready", "", "")
	if code != http.StatusOK || !strings.Contains(string(body), `"memory"`) {
		t.Fatalf("ready: unexpected %d %s", code, body)
	}
	code, body = s.do(t, http.MethodGet, "/metrics", "", "")
	if code != http.StatusOK || !strings.Contains(string(body), "smarttodo_") {
		t.Fatalf("metrics: unexpected %d", code)
	}
}
