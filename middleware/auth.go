package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/utils"
)

// AuthMiddleware는 Bearer 토큰 또는 로그인 시 발급한 auth_token 쿠키를 검증한다.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		// Authorization 헤더 우선
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization 헤더가 올바르지 않습니다."})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "인증이 필요합니다."})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "토큰이 유효하지 않거나 만료되었습니다."})
			c.Abort()
			return
		}

		// 계정이 아직 존재하는지 확인
		var user models.User
		if err := db.Select("id").First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "사용자를 찾을 수 없습니다."})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireTeacher는 교사 전용 라우트를 보호한다. AuthMiddleware 뒤에 걸어야 한다.
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "인증이 필요합니다."})
			c.Abort()
			return
		}
		if role != string(models.RoleTeacher) {
			c.JSON(http.StatusForbidden, gin.H{"message": "교사 권한이 필요합니다."})
			c.Abort()
			return
		}
		c.Next()
	}
}
