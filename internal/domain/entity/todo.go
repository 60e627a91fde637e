package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo представляет задачу пользователя
type Todo struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time `gorm:"type:timestamp" json:"due_date,omitempty"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`

	// Владелец задачи. Заполняется только в админских выборках.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Todo) TableName() string {
	return "todos"
}

// BeforeCreate генерирует UUID для новой задачи, если он не задан
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(t.ID) == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
