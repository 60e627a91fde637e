package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/todo-api/internal/domain/entity"
)

const testSecret = "test-secret-key-for-jwt"

func createTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	service, err := NewJWTService(testSecret, 7)
	require.NoError(t, err, "Создание JWTService не должно возвращать ошибку")
	return service
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	// Act
	service, err := NewJWTService("", 7)

	// Assert
	assert.Error(t, err, "Пустой секрет должен быть ошибкой")
	assert.Nil(t, service)
}

func TestJWTService_GenerateAndParse_RoundTrip(t *testing.T) {
	// Arrange
	service := createTestJWTService(t)
	picture := "https://example.com/avatar.png"
	user := &entity.User{
		ID:      "b7a9c1d2-0000-4000-8000-000000000001",
		Email:   "user@example.com",
		Name:    "Test User",
		Picture: &picture,
		Role:    entity.RoleUser,
	}

	// Act
	tokenString, err := service.GenerateToken(user)
	require.NoError(t, err, "Генерация токена должна быть успешной")
	require.NotEmpty(t, tokenString)

	claims, err := service.ParseToken(tokenString)

	// Assert
	require.NoError(t, err, "Валидный токен должен проходить проверку")
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, "todo-api", claims.Issuer)
	assert.Equal(t, user.ID, claims.Subject)

	// Срок жизни токена — 7 дней
	expectedExpiry := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, time.Minute,
		"Время истечения должно быть примерно через 7 дней")
}

func TestJWTService_ParseToken_Malformed(t *testing.T) {
	// Arrange
	service := createTestJWTService(t)

	// Act
	claims, err := service.ParseToken("not-a-jwt-at-all")

	// Assert
	assert.ErrorIs(t, err, ErrTokenMalformed, "Мусорная строка должна давать ErrTokenMalformed")
	assert.Nil(t, claims)
}

func TestJWTService_ParseToken_WrongSignature(t *testing.T) {
	// Arrange: токен, подписанный другим секретом
	service := createTestJWTService(t)
	otherService, err := NewJWTService("completely-different-secret", 7)
	require.NoError(t, err)

	user := &entity.User{ID: "id-1", Email: "user@example.com", Role: entity.RoleUser}
	tokenString, err := otherService.GenerateToken(user)
	require.NoError(t, err)

	// Act
	claims, err := service.ParseToken(tokenString)

	// Assert
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid, "Чужая подпись должна давать ErrTokenSignatureInvalid")
	assert.Nil(t, claims)
}

func TestJWTService_ParseToken_Expired(t *testing.T) {
	// Arrange: вручную собираем истекший токен с валидной подписью
	service := createTestJWTService(t)
	expiredClaims := &JWTCustomClaims{
		UserID: "id-1",
		Email:  "user@example.com",
		Role:   entity.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "todo-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	// Act
	claims, err := service.ParseToken(tokenString)

	// Assert: истечение, а не подпись и не malformed
	assert.ErrorIs(t, err, ErrTokenExpired, "Истекший токен должен давать именно ErrTokenExpired")
	assert.NotErrorIs(t, err, ErrTokenSignatureInvalid)
	assert.NotErrorIs(t, err, ErrTokenMalformed)
	assert.Nil(t, claims)
}

func TestJWTService_ParseToken_ExpiredWithWrongSignature(t *testing.T) {
	// Arrange: истекший токен с чужой подписью
	service := createTestJWTService(t)
	expiredClaims := &JWTCustomClaims{
		UserID: "id-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims)
	tokenString, err := token.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	// Act
	_, err = service.ParseToken(tokenString)

	// Assert: истечение проверяется раньше подписи
	assert.ErrorIs(t, err, ErrTokenExpired,
		"При комбинации истечения и неверной подписи приоритет у ErrTokenExpired")
}

func TestJWTService_ParseToken_UnexpectedSigningMethod(t *testing.T) {
	// Arrange: токен с alg=none
	service := createTestJWTService(t)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTCustomClaims{
		UserID: "id-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// Act
	claims, err := service.ParseToken(tokenString)

	// Assert
	assert.Error(t, err, "Токен без HMAC-подписи должен отклоняться")
	assert.Nil(t, claims)
}
