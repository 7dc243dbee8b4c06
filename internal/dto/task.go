package dto

import (
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Priority    int               `json:"priority"`
	Color       string            `json:"color"`
	DueDate     *time.Time        `json:"due_date"`
	AuthorID    uint64            `json:"author_id"`
	AssignedTo  *uint64           `json:"assigned_to"`
	DashboardID uint64            `json:"dashboard_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// SuggestedTaskDTO is an AI suggestion that has not been saved
type SuggestedTaskDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Color:       task.Color,
		DueDate:     task.DueDate,
		AuthorID:    task.AuthorID,
		AssignedTo:  task.AssignedTo,
		DashboardID: task.DashboardID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks
func ToTaskListResponse(tasks []models.Task, pagination utils.PaginationResponse) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = ToTaskDTO(t)
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: pagination,
	}
}

func ToSuggestedTaskDTOs(generated []services.GeneratedTask) []SuggestedTaskDTO {
	out := make([]SuggestedTaskDTO, len(generated))
	for i, g := range generated {
		out[i] = SuggestedTaskDTO{
			Title:       g.Title,
			Description: g.Description,
			Priority:    g.Priority,
			DueDate:     g.DueDate,
		}
	}
	return out
}
