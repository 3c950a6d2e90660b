package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"linkpulse-core/internal/handler/response"
	"linkpulse-core/internal/model"
	"linkpulse-core/internal/service"
	"linkpulse-core/pkg/errno"
)

const principalKey = "auth.principal"

// Auth verifies the bearer token and attaches the resolved principal to the
// request context. Downstream code receives the user by parameter via
// CurrentUser; nothing reads identity from ambient state.
func Auth(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		user, err := authSvc.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated principal set by Auth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
