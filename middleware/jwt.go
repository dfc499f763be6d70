package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
	"qrasset-http-service/services"
)

var jwtService *services.JWTService

// InitAuthMiddleware 인증 미들웨어 초기화
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg)
}

// Authentication 공통 인증 미들웨어.
// Bearer 토큰을 검증하고 클레임을 컨텍스트에 저장한다.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization 헤더가 필요합니다")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization 헤더는 Bearer {token} 형식이어야 합니다")
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(parts[1])
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "유효하지 않거나 만료된 토큰입니다")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAdmin admin 역할 전용 엔드포인트 보호.
// Authentication 이후에 사용해야 한다.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			response.Fail(c, code.ErrPermissionDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID 컨텍스트에서 인증된 사용자 ID 조회
func CurrentUserID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// CurrentUserRole 컨텍스트에서 인증된 사용자 역할 조회
func CurrentUserRole(c *gin.Context) string {
	if v, exists := c.Get("role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
