package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/todo-api/internal/config"
	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
	"github.com/yourusername/todo-api/internal/middleware"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
	"github.com/yourusername/todo-api/internal/service"
	"github.com/yourusername/todo-api/pkg/auth"
)

const testFrontendURL = "http://localhost:3000"

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(userID string, role string) (*entity.User, error) {
	args := m.Called(userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListWithTodoCounts() ([]repository.UserWithTodoCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserWithTodoCount), args.Error(1)
}

func createTestAuthHandler(t *testing.T, userRepo repository.UserRepository) *AuthHandler {
	t.Helper()

	jwtService, err := auth.NewJWTService("handler-test-secret", 7)
	require.NoError(t, err)

	oauthService, err := service.NewGoogleOAuthService(userRepo, jwtService, config.GoogleConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "http://localhost:3001/api/auth/google/callback",
	})
	require.NoError(t, err)

	userService, err := service.NewUserService(userRepo)
	require.NoError(t, err)

	return NewAuthHandler(oauthService, userService, testFrontendURL)
}

// ============================================================================
// Тесты для AuthHandler
// ============================================================================

func TestAuthHandler_GoogleLogin_RedirectsToProvider(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	h := createTestAuthHandler(t, new(MockUserRepository))
	router := gin.New()
	router.GET("/api/auth/google", h.GoogleLogin)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "accounts.google.com")
	assert.Contains(t, location, "access_type=offline")
	assert.Contains(t, location, "prompt=consent")
}

func TestAuthHandler_GoogleCallback_ProviderError(t *testing.T) {
	// Arrange: провайдер вернул error в query — редирект на /login с тем же кодом
	gin.SetMode(gin.TestMode)
	h := createTestAuthHandler(t, new(MockUserRepository))
	router := gin.New()
	router.GET("/api/auth/google/callback", h.GoogleCallback)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?error=access_denied", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, testFrontendURL+"/login?error=access_denied", w.Header().Get("Location"))
}

func TestAuthHandler_GoogleCallback_NoCode(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	h := createTestAuthHandler(t, new(MockUserRepository))
	router := gin.New()
	router.GET("/api/auth/google/callback", h.GoogleCallback)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, testFrontendURL+"/login?error=no_code", w.Header().Get("Location"))
}

func TestAuthHandler_GetMe_Success(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	user := &entity.User{
		ID:    "user-1",
		Email: "user@example.com",
		Name:  "Test User",
		Role:  entity.RoleUser,
	}
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", "user-1").Return(user, nil)

	h := createTestAuthHandler(t, mockUserRepo)
	router := gin.New()
	router.GET("/api/auth/me", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		h.GetMe(c)
	})

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"user@example.com"`)
	assert.Contains(t, w.Body.String(), `"role":"USER"`)
	assert.NotContains(t, w.Body.String(), `"updated_at"`, "Профиль не включает служебные поля")
	mockUserRepo.AssertExpectations(t)
}

func TestAuthHandler_GetMe_UserNotFound(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", "gone").Return(nil, apperrors.ErrNotFound)

	h := createTestAuthHandler(t, mockUserRepo)
	router := gin.New()
	router.GET("/api/auth/me", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "gone")
		h.GetMe(c)
	})

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestAuthHandler_Logout(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	h := createTestAuthHandler(t, new(MockUserRepository))
	router := gin.New()
	router.POST("/api/auth/logout", h.Logout)

	// Act
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "clear token on client side")
}

func TestAuthHandler_Health(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	h := createTestAuthHandler(t, new(MockUserRepository))
	router := gin.New()
	router.GET("/api/auth/health", h.Health)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/auth/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
}
