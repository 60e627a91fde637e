package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockTx создаёт минимальный мок для передачи в BeforeCreate
// BeforeCreate не использует tx напрямую, но сигнатура требует его
var mockTx *gorm.DB = nil

func TestUser_BeforeCreate_AssignsUUID(t *testing.T) {
	// Arrange
	user := &User{Email: "test@example.com", Name: "Test"}

	// Act
	err := user.BeforeCreate(mockTx)

	// Assert
	require.NoError(t, err, "BeforeCreate не должен возвращать ошибку")
	assert.NotEmpty(t, user.ID, "ID должен быть присвоен")
	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err, "ID должен быть валидным UUID")
}

func TestUser_BeforeCreate_KeepsExistingID(t *testing.T) {
	// Arrange
	existingID := uuid.NewString()
	user := &User{ID: existingID, Email: "test@example.com"}

	// Act
	err := user.BeforeCreate(mockTx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, existingID, user.ID, "Заданный ID не должен перезаписываться")
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("user"), "Роли регистрозависимы")
	assert.False(t, ValidRole("SUPERUSER"))
	assert.False(t, ValidRole(""))
}
