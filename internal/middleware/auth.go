package middleware

import (
	"errors"
	"strings"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the (user, role, device) principal from the
// bearer token. The device claim is compared against the users table on
// every request, never cached, so a login from a second device immediately
// invalidates tokens held by the first; the client reacts to the 401 by
// forcing re-login.
func AuthMiddleware(cfg *config.Config, authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if err := authService.VerifyDevice(claims); err != nil {
			if errors.Is(err, util.ErrSessionExpired) {
				util.Unauthorized(c, util.ErrSessionExpired.Error())
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}
