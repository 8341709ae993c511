package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarttodo/tasks-api/internal/api/metrics"
	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/ports"
	"github.com/smarttodo/tasks-api/internal/core/query"
)

// TaskHandler handles HTTP requests for the caller's tasks and subtasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        category   query     string  false  "Exact category"
// @Param        priority   query     string  false  "Exact priority"  Enums(low, medium, high)
// @Param        completed  query     string  false  "\"true\" selects completed tasks, any other value open ones"
// @Param        sort_by    query     string  false  "Sort field"      Enums(dueDate, createdAt, updatedAt, title, description, category, priority, completed, id, userId, recurring, subtasks)
// @Param        order      query     string  false  "Sort direction"  Enums(asc, desc)
// @Success      200        {array}   domain.Task
// @Failure      400        {object}  messageResponse
// @Failure      401        {object}  messageResponse
// @Failure      500        {object}  messageResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	filter := query.Filter{
		Category: c.QueryParam("category"),
		Priority: domain.Priority(c.QueryParam("priority")),
	}
	if c.QueryParams().Has("completed") {
		completed := c.QueryParam("completed") == "true"
		filter.Completed = &completed
	}

	sort, err := query.ParseSort(c.QueryParam("sort_by"), c.QueryParam("order"))
	if err != nil {
		return err
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), userID, filter, sort)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/tasks/:id. Only the keys present in the body change.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	patch, err := decodeTaskPatch(body)
	if err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), userID, c.Param("id"), patch)
	if err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}

// AddSubtask handles POST /api/tasks/:id/subtasks.
//
// @Summary      Add a subtask
// @Tags         subtasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Parent task id"
// @Param        body  body      createSubtaskRequest  true  "Subtask title"
// @Success      201   {object}  domain.Subtask
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/tasks/{id}/subtasks [post]
func (h *TaskHandler) AddSubtask(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	sub, err := h.service.AddSubtask(c.Request().Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("subtask_create").Inc()
	return c.JSON(http.StatusCreated, sub)
}

// UpdateSubtask handles PUT /api/tasks/subtasks/:subtaskId.
//
// @Summary      Update a subtask
// @Tags         subtasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        subtaskId  path      string                true  "Subtask id"
// @Param        body       body      updateSubtaskRequest  true  "Fields to change"
// @Success      200        {object}  domain.Subtask
// @Failure      400        {object}  messageResponse
// @Failure      401        {object}  messageResponse
// @Failure      404        {object}  messageResponse
// @Failure      500        {object}  messageResponse
// @Router       /api/tasks/subtasks/{subtaskId} [put]
func (h *TaskHandler) UpdateSubtask(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	sub, err := h.service.UpdateSubtask(c.Request().Context(), userID, c.Param("subtaskId"), domain.SubtaskPatch{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("subtask_update").Inc()
	return c.JSON(http.StatusOK, sub)
}

// DeleteSubtask handles DELETE /api/tasks/subtasks/:subtaskId.
//
// @Summary      Delete a subtask
// @Tags         subtasks
// @Produce      json
// @Security     BearerAuth
// @Param        subtaskId  path      string  true  "Subtask id"
// @Success      200        {object}  messageResponse
// @Failure      401        {object}  messageResponse
// @Failure      404        {object}  messageResponse
// @Failure      500        {object}  messageResponse
// @Router       /api/tasks/subtasks/{subtaskId} [delete]
func (h *TaskHandler) DeleteSubtask(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSubtask(c.Request().Context(), userID, c.Param("subtaskId")); err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("subtask_delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Subtask deleted successfully"})
}
