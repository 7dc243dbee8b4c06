package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
)

// ContextKeyTask is where LoadTask stores the task it resolved.
const ContextKeyTask = "task"

// TaskFinder looks a task up by id.
type TaskFinder interface {
	GetByID(ctx context.Context, id uint64) (*models.Task, error)
}

// LoadTask resolves the task named by the :id route parameter and stores it in the context.
func LoadTask(tasks TaskFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || taskID == 0 {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		task, err := tasks.GetByID(c.Request.Context(), taskID)
		if err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task stored by LoadTask
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok
}
