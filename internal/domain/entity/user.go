package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Роли пользователей. Других значений в системе не существует.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User представляет пользователя в системе.
// Запись создается при первом успешном входе через Google OAuth,
// при повторных входах обновляются только name и picture.
type User struct {
	ID      string  `gorm:"type:uuid;primaryKey" json:"id"`
	Email   string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Picture *string `gorm:"size:512" json:"picture"`
	Role    string  `gorm:"size:20;not null;default:'USER'" json:"role"` // USER или ADMIN

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate генерирует UUID для нового пользователя, если он не задан
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(u.ID) == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin возвращает true, если пользователь — администратор
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole проверяет, что строка является одной из двух допустимых ролей
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
