package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejection_Is(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrDashboardNotFound)

	assert.ErrorIs(t, wrapped, ErrDashboardNotFound)
	assert.NotErrorIs(t, wrapped, ErrTaskNotFound)
	assert.NotErrorIs(t, errors.New("Dashboard does not exist."), ErrDashboardNotFound)
}

func TestAsRejection(t *testing.T) {
	r, ok := AsRejection(fmt.Errorf("wrapped: %w", ErrForbidden))
	assert.True(t, ok)
	assert.Equal(t, ReasonForbidden, r.Reason)
	assert.Equal(t, "Forbidden.", r.Message)

	_, ok = AsRejection(errors.New("disk full"))
	assert.False(t, ok)
}
