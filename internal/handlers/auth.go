package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/constants"
	"github.com/victor-romero-martinez/api-agendapp/internal/dto"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/metrics"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	users *services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=255"`
}

// Register creates an account and opens a session for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		metrics.AuthRegistrationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthRegistrationsTotal.WithLabelValues(outcomeResult(err)).Inc()
		apierrors.Respond(c, err)
		return
	}

	if !saveSessionToken(c, h.users, user) {
		return
	}
	metrics.AuthRegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Signin authenticates a user and initializes the session.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		metrics.AuthLoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthLoginsTotal.WithLabelValues(outcomeResult(err)).Inc()
		apierrors.Respond(c, err)
		return
	}

	if !saveSessionToken(c, h.users, user) {
		return
	}
	metrics.AuthLoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Signout removes the authentication session.
func (h *AuthHandler) Signout(c *gin.Context) {
	if !endSession(c) {
		return
	}
	respondMessage(c, "Successfully")
}

// Verify confirms the email address behind a verification token.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apierrors.BadRequest(c, "Missing token")
		return
	}

	user, err := h.users.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// saveSessionToken stores a freshly signed token for user in the session.
func saveSessionToken(c *gin.Context, users *services.UserService, user *models.User) bool {
	token, err := users.IssueSessionToken(user)
	if err != nil {
		apierrors.Respond(c, err)
		return false
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, token)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}

func endSession(c *gin.Context) bool {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return false
	}
	return true
}

func outcomeResult(err error) string {
	if _, ok := services.AsRejection(err); ok {
		return metrics.ResultRejected
	}
	return metrics.ResultError
}
