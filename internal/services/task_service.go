package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/victor-romero-martinez/api-agendapp/internal/constants"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleLength       = invalid("Title must be between 4 and 60 characters.")
	ErrDescriptionLength = invalid("Description must be between 4 and 250 characters.")
	ErrInvalidPriority   = invalid("Priority must be between 1 and 5.")
	ErrInvalidStatus     = invalid("Status must be one of pending, inprogress, completed.")
	ErrColorLength       = invalid("Color must be at most 60 characters.")
	ErrTextRequired      = invalid("Text is required.")
)

// TaskGenerator extracts task suggestions from free text.
type TaskGenerator interface {
	GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService handles task business logic
type TaskService struct {
	store     repository.Store
	generator TaskGenerator
}

// NewTaskService creates a new TaskService. generator may be nil.
func NewTaskService(store repository.Store, generator TaskGenerator) *TaskService {
	return &TaskService{
		store:     store,
		generator: generator,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AuthorID    *uint64
	DashboardID *uint64
	Status      *models.TaskStatus
	Page        int
	PageSize    int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    int
	Color       string
	DueDate     *time.Time
	AssignedTo  *uint64
	DashboardID uint64
}

// UpdateTaskInput represents input for updating a task.
// DashboardID must name the task's current dashboard; zero means "unchanged".
type UpdateTaskInput struct {
	ID           uint64
	DashboardID  uint64
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *int
	Color        *string
	DueDate      *time.Time
	ClearDueDate bool
	AssignedTo   *uint64
}

// List returns a page of tasks, optionally filtered
func (s *TaskService) List(ctx context.Context, input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	tasks, total, err := s.store.Tasks().List(ctx, repository.TaskFilter{
		AuthorID:    input.AuthorID,
		DashboardID: input.DashboardID,
		Status:      input.Status,
		Page:        input.Page,
		PageSize:    input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListByAuthor returns a page of tasks written by authorID
func (s *TaskService) ListByAuthor(ctx context.Context, authorID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	input.AuthorID = &authorID
	return s.List(ctx, input)
}

// GetByID returns a single task
func (s *TaskService) GetByID(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.store.Tasks().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create creates a task on a dashboard owned by the requester
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput, email string) (*models.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	priority := input.Priority
	if priority == 0 {
		priority = models.MinTaskPriority
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = utils.RandomColor()
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	var task *models.Task
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if err := requireOwner(ctx, tx, repository.DashboardOwner, input.DashboardID, author.ID, ErrDashboardNotFound, ErrForbidden); err != nil {
			return err
		}
		if err := checkAssignee(ctx, tx, input.AssignedTo); err != nil {
			return err
		}

		created := &models.Task{
			Title:       title,
			Description: input.Description,
			Status:      status,
			Priority:    priority,
			Color:       color,
			DueDate:     input.DueDate,
			AuthorID:    author.ID,
			AssignedTo:  input.AssignedTo,
			DashboardID: input.DashboardID,
		}
		if err := tx.Tasks().Create(ctx, created); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		task, err = tx.Tasks().FindByID(ctx, created.ID)
		if err != nil {
			return fmt.Errorf("failed to reload task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Update changes a task. The requester must be its author and own its dashboard.
func (s *TaskService) Update(ctx context.Context, input UpdateTaskInput, email string) (*models.Task, error) {
	updates := map[string]interface{}{}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if input.Description != nil {
		if err := validateDescription(input.Description); err != nil {
			return nil, err
		}
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *input.Status
	}
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		updates["priority"] = *input.Priority
	}
	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
		updates["color"] = *input.Color
	}
	if input.ClearDueDate {
		updates["due_date"] = nil
	} else if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.AssignedTo != nil {
		updates["assigned_to"] = *input.AssignedTo
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Tasks().FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		author, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing.AuthorID != author.ID {
			return ErrForbidden
		}

		dashboardID := input.DashboardID
		if dashboardID == 0 {
			dashboardID = existing.DashboardID
		}
		if err := requireOwner(ctx, tx, repository.DashboardOwner, dashboardID, author.ID, ErrDashboardNotFound, ErrForbidden); err != nil {
			return err
		}
		if dashboardID != existing.DashboardID {
			return ErrForbidden
		}

		if err := checkAssignee(ctx, tx, input.AssignedTo); err != nil {
			return err
		}

		if err := tx.Tasks().Update(ctx, existing.ID, updates); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		task, err = tx.Tasks().FindByID(ctx, existing.ID)
		if err != nil {
			return fmt.Errorf("failed to reload task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a task written by the requester. A task that does not exist
// and a task written by someone else produce the same outcome.
func (s *TaskService) Delete(ctx context.Context, id uint64, email string) (string, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}

		affected, err := tx.DeleteOwned(ctx, repository.TaskAuthor, id, author.ID)
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		if affected == 0 {
			return ErrTaskNotOwned
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Deleted successfully tasks %d.", id), nil
}

// Suggest asks the AI generator for tasks that fit text, for a dashboard the requester owns.
// Suggestions are not persisted.
func (s *TaskService) Suggest(ctx context.Context, dashboardID uint64, text, email string) ([]GeneratedTask, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	requester, err := resolveRequester(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ctx, s.store, repository.DashboardOwner, dashboardID, requester.ID, ErrDashboardNotFound, ErrForbidden); err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	suggestions := make([]GeneratedTask, 0, len(generated))
	for _, g := range generated {
		if len(suggestions) == constants.MaxSuggestedTasks {
			break
		}
		title, err := validateTitle(g.Title)
		if err != nil {
			continue
		}
		g.Title = title
		suggestions = append(suggestions, g)
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	return suggestions, nil
}

// checkAssignee requires assignedTo, when set, to be an active user.
func checkAssignee(ctx context.Context, store repository.Store, assignedTo *uint64) error {
	if assignedTo == nil {
		return nil
	}
	if *assignedTo == 0 {
		return ErrInvalidAssignee
	}

	count, err := store.Users().CountActiveByIDs(ctx, []uint64{*assignedTo})
	if err != nil {
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	if count != 1 {
		return ErrInvalidAssignee
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < 4 || n > 60 {
		return "", ErrTitleLength
	}
	return title, nil
}

func validateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if n := utf8.RuneCountInString(*description); n < 4 || n > 250 {
		return ErrDescriptionLength
	}
	return nil
}

func validatePriority(priority int) error {
	if priority < models.MinTaskPriority || priority > models.MaxTaskPriority {
		return ErrInvalidPriority
	}
	return nil
}

func validateColor(color string) error {
	if utf8.RuneCountInString(color) > 60 {
		return ErrColorLength
	}
	return nil
}
