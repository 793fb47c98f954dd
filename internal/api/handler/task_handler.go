package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wophi/wophi-api/internal/api/metrics"
	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  ports.TaskData
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.TaskStatus(req.Status)
	if status == "" {
		status = domain.StatusPending
	}

	task, err := h.service.CreateTask(c.Request().Context(), identity.AlmaID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
	}, status)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(status)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/tasks with optional status, category, and search
// query parameters.
//
// @Summary      List the authenticated user's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"  Enums(pending, in-progress, done)
// @Param        category  query     string  false  "Filter by category name"
// @Param        search    query     string  false  "Partial match on title or description"
// @Success      200       {array}   ports.TaskData
// @Failure      401       {object}  map[string]any
// @Failure      500       {object}  map[string]any
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.TaskByFilter(c.Request().Context(), identity.AlmaID, ports.TaskFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
