package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/dto"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/metrics"
	"github.com/victor-romero-martinez/api-agendapp/internal/middleware"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
	}
}

// ListTasks returns a page of tasks.
// Can filter by author_id, dashboard_id and status.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	authorID, ok := optionalUint(c, "author_id")
	if !ok {
		return
	}
	dashboardID, ok := optionalUint(c, "dashboard_id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		DashboardID: dashboardID,
		Page:        params.Page,
		PageSize:    params.Limit,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		input.Status = &status
	}

	var (
		tasks []models.Task
		total int64
		err   error
	)
	if authorID != nil {
		tasks, total, err = h.tasks.ListByAuthor(c.Request.Context(), *authorID, input)
	} else {
		tasks, total, err = h.tasks.List(c.Request.Context(), input)
	}
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Response(total)))
}

// GetTask returns a specific task by ID
// Task is already loaded by the LoadTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Title       string            `json:"title" binding:"required"`
		Description *string           `json:"description"`
		Status      models.TaskStatus `json:"status" binding:"omitempty,oneof=pending inprogress completed"`
		Priority    int               `json:"priority" binding:"omitempty,min=1,max=5"`
		Color       string            `json:"color" binding:"omitempty,max=60"`
		DueDate     *time.Time        `json:"due_date"`
		AssignedTo  *uint64           `json:"assigned_to"`
		DashboardID uint64            `json:"dashboard_id" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Color:       req.Color,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		DashboardID: req.DashboardID,
	}, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		ID           uint64             `json:"id" binding:"required,gt=0"`
		DashboardID  uint64             `json:"dashboard_id"`
		Title        *string            `json:"title"`
		Description  *string            `json:"description"`
		Status       *models.TaskStatus `json:"status" binding:"omitempty,oneof=pending inprogress completed"`
		Priority     *int               `json:"priority" binding:"omitempty,min=1,max=5"`
		Color        *string            `json:"color" binding:"omitempty,max=60"`
		DueDate      *time.Time         `json:"due_date"`
		ClearDueDate bool               `json:"clear_due_date"`
		AssignedTo   *uint64            `json:"assigned_to"`
	}
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), services.UpdateTaskInput{
		ID:           req.ID,
		DashboardID:  req.DashboardID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		Color:        req.Color,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		AssignedTo:   req.AssignedTo,
	}, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task written by the caller
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}
	id, ok := queryID(c)
	if !ok {
		return
	}

	message, err := h.tasks.Delete(c.Request.Context(), id, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondMessage(c, message)
}

// SuggestTasks generates task suggestions from text using AI
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Text        string `json:"text" binding:"required,max=4000"`
		DashboardID uint64 `json:"dashboard_id" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	suggestions, err := h.tasks.Suggest(c.Request.Context(), req.DashboardID, req.Text, claims.Email)
	if err != nil {
		metrics.TasksSuggestedTotal.WithLabelValues(outcomeResult(err)).Inc()
		apierrors.Respond(c, err)
		return
	}

	metrics.TasksSuggestedTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToSuggestedTaskDTOs(suggestions),
	})
}
