package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/api/dto"
	"github.com/martijn/papertrade/internal/api/middleware"
	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/service"
)

type AuthHandler struct {
	authService *service.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		respondError(c, err)
		return
	}

	// Registration doubles as login
	h.establishSession(c, user)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.establishSession(c, user)
}

// Logout handles GET /logout: the session is cleared unconditionally
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// LoginForm handles GET /login and GET /register for clients probing the
// anonymous routes; the form itself is rendered externally.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) establishSession(c *gin.Context, user *domain.User) {
	token, err := h.authService.IssueSessionToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to establish session",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.SetCookie(middleware.SessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
