package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/handler/dto"
	"github.com/yourusername/todo-api/internal/middleware"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
	"github.com/yourusername/todo-api/internal/service"
)

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	oauthService *service.GoogleOAuthService
	userService  *service.UserService
	frontendURL  string
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(oauthService *service.GoogleOAuthService, userService *service.UserService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		oauthService: oauthService,
		userService:  userService,
		frontendURL:  frontendURL,
	}
}

// GoogleLogin начинает OAuth-поток: редирект на страницу авторизации Google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	authURL := h.oauthService.AuthURL()
	log.Printf("[AuthHandler] Редирект на Google OAuth: %s", authURL)
	c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback обрабатывает колбэк провайдера.
// Любой исход — редирект на фронтенд: успех ведет на /auth-callback с
// токеном в query-параметре (фронтенд читает его один раз и убирает из
// URL), любая ошибка — на /login с машиночитаемым кодом. До транспортного
// слоя ошибки OAuth-потока не доходят.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	params := service.CallbackParams{
		Code:  c.Query("code"),
		Error: c.Query("error"),
	}

	token, err := h.oauthService.CompleteLogin(c.Request.Context(), params)
	if err != nil {
		h.redirectLoginError(c, err)
		return
	}

	redirectURL := h.frontendURL + "/auth-callback?token=" + url.QueryEscape(token)
	c.Redirect(http.StatusFound, redirectURL)
}

// redirectLoginError переводит ошибку OAuth-потока в redirect на страницу
// логина с кодом ошибки
func (h *AuthHandler) redirectLoginError(c *gin.Context, err error) {
	var code string
	var denied *service.ProviderDeniedError
	switch {
	case errors.As(err, &denied):
		code = denied.Code
	case errors.Is(err, service.ErrNoCode):
		code = service.ErrNoCode.Error()
	case errors.Is(err, service.ErrTokenExchangeFailed):
		code = service.ErrTokenExchangeFailed.Error()
	case errors.Is(err, service.ErrUserInfoFailed):
		code = service.ErrUserInfoFailed.Error()
	case errors.Is(err, service.ErrNoEmail):
		code = service.ErrNoEmail.Error()
	case errors.Is(err, service.ErrDatabase):
		code = service.ErrDatabase.Error()
	default:
		log.Printf("[AuthHandler] Непредвиденная ошибка в OAuth колбэке: %v", err)
		code = "unexpected_error"
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/login?error="+url.QueryEscape(code))
}

// GetMe возвращает профиль текущего пользователя
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Пользователь исчез между middleware и обработчиком — гонка, допустимо
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserProfileDTO(user))
}

// Logout подтверждает выход. Состояние сессии живет только в токене,
// поэтому серверу удалять нечего — клиент сам выбрасывает токен.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful. Please clear token on client side.",
	})
}

// Health — проверка живости сервиса
func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   "auth-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
