package handler

import (
	"github.com/gin-gonic/gin"

	"linkpulse-core/internal/handler/request"
	"linkpulse-core/internal/handler/response"
	"linkpulse-core/internal/service"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/validator"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new account.
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "registration payload"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login exchanges credentials for a token.
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "login payload"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"username":   user.Username,
		"tier":       user.Tier,
		"expires_at": user.ExpiresAt,
	})
}
