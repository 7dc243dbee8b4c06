package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/victor-romero-martinez/api-agendapp/internal/auth"
	"github.com/victor-romero-martinez/api-agendapp/internal/dto"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/middleware"
)

// bindJSON decodes the body into req and answers 400 when it does not fit.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			apierrors.BadRequestWithDetails(c, "Invalid request body", fields)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// queryID parses the positive id query parameter.
func queryID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// deleteID reads the target id of a delete from ?id= or from a {"id": N} body.
func deleteID(c *gin.Context) (uint64, bool) {
	if c.Query("id") != "" {
		return queryID(c)
	}

	var req struct {
		ID uint64 `json:"id" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return 0, false
	}
	return req.ID, true
}

// optionalUint parses an optional positive query parameter.
func optionalUint(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &v, true
}

func identity(c *gin.Context) (*auth.Claims, bool) {
	claims, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	return claims, true
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
