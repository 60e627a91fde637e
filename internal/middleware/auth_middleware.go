package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/domain/repository"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
	"github.com/yourusername/todo-api/pkg/auth"
)

// Ключи контекста запроса, устанавливаемые после успешной аутентификации
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextName   = "name"
)

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repository.UserRepository
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// RequireAuth проверяет, аутентифицирован ли пользователь.
// После проверки подписи токена пользователь перечитывается из БД:
// валидный токен удаленного аккаунта не проходит. Значения в контекст
// берутся из строки БД, не из claims.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided. Please login first.", "error_type": "token_missing"})
			c.Abort()
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ParseToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired. Please login again.", "error_type": "token_expired"})
			case errors.Is(err, auth.ErrTokenMalformed):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "error_type": "token_malformed"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "error_type": "token_invalid"})
			}
			c.Abort()
			return
		}

		// Проверяем, что пользователь все еще существует
		user, err := m.userRepo.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists", "error_type": "user_gone"})
				c.Abort()
				return
			}
			// Ошибка хранилища — это 500, а не отказ в аутентификации:
			// клиент может повторить запрос, перелогиниваться не нужно.
			log.Printf("[AuthMiddleware] Ошибка БД при проверке пользователя ID=%s: %v", claims.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed", "error_type": "internal_error"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextRole, user.Role)
		c.Set(ContextName, user.Name)

		c.Next()
	}
}

// RequireRole пропускает только пользователей с одной из разрешенных ролей.
// Должен применяться ПОСЛЕ RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextRole)
		if !exists {
			// Недостижимо при правильном порядке middleware
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "error_type": "not_authenticated"})
			c.Abort()
			return
		}

		role, _ := roleValue.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		// Собственная роль вызывающего не секрет для него самого
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Access denied",
			"message":   "Required roles: " + strings.Join(roles, ", "),
			"your_role": role,
		})
		c.Abort()
	}
}
