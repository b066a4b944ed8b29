package middleware

import (
	"strings"

	"roomradar/response"
	"roomradar/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xác thực token và kiểm tra role nếu được truyền vào
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Nếu có yêu cầu role thì user phải khớp một trong số đó
		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}
