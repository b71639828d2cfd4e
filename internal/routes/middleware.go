package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hwllojeena/bucket-list/internal/services"
)

// AuthMiddleware は解錠トークンを検証するミドルウェアです。
// トークンのスラッグがパスのスラッグと一致しない場合はアクセスを拒否します。
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		// "Bearer " プレフィックスを削除
		if !strings.HasPrefix(tokenString, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}
		tokenString = tokenString[len("Bearer "):]

		slug, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if slug != c.Param("slug") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Token does not match this list"})
			c.Abort()
			return
		}

		c.Set("slug", slug)
		c.Next()
	}
}
