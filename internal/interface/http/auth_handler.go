package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/groceryhub/grocery-api/internal/application"
	"github.com/groceryhub/grocery-api/pkg/response"
	"github.com/groceryhub/grocery-api/pkg/validation"
)

type AuthHandler struct {
	Service *application.AccountService
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.AccountService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, _, err := h.Service.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sessionResponse{SessionToken: token}, "registered")
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, _, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sessionResponse{SessionToken: token}, "logged in")
}

// Logout POST /api/logout: revokes the presented token only.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), authToken(c)); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "logged out")
}

// LogoutAll POST /api/logout/all: revokes every live session of the user.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.Service.LogoutAll(c.Request.Context(), authToken(c)); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "all sessions revoked")
}

// DeleteAccount DELETE /api/user: destroys the account and all owned data.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.Service.DeleteAccount(c.Request.Context(), authToken(c)); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "account deleted")
}
