package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/dto"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns a page of users
func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.users.FindAll(c.Request.Context(), params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Response(total)))
}

// FindByEmail looks a user up by the email in the body
func (h *UserHandler) FindByEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile changes the caller's profile and re-issues the session token
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Email       *string `json:"email" binding:"omitempty,email"`
		UserName    *string `json:"user_name" binding:"omitempty,max=60"`
		URLImg      *string `json:"url_img" binding:"omitempty,url"`
		Password    *string `json:"password" binding:"omitempty,max=255"`
		NewPassword *string `json:"new_password" binding:"omitempty,min=4,max=255"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), services.ProfilePatch{
		Email:       req.Email,
		UserName:    req.UserName,
		URLImg:      req.URLImg,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	}, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if !saveSessionToken(c, h.users, user) {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Deactivate disables an account. Disabling your own account also ends the session.
func (h *UserHandler) Deactivate(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}
	id, ok := queryID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	requester, err := h.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	message, err := h.users.Deactivate(ctx, id, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if requester.ID == id && !endSession(c) {
		return
	}
	respondMessage(c, message)
}
