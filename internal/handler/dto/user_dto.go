package dto

import (
	"time"

	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
)

// UserProfileDTO представляет профиль пользователя для /auth/me
type UserProfileDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   *string   `json:"picture"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfileDTO собирает DTO профиля из сущности
func NewUserProfileDTO(user *entity.User) *UserProfileDTO {
	return &UserProfileDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// AdminUserDTO представляет пользователя в админском списке
type AdminUserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   *string   `json:"picture"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	TodoCount int64     `json:"todo_count"`
}

// NewAdminUserDTOs собирает админский список из результата репозитория
func NewAdminUserDTOs(users []repository.UserWithTodoCount) []AdminUserDTO {
	result := make([]AdminUserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, AdminUserDTO{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Picture:   u.Picture,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
			TodoCount: u.TodoCount,
		})
	}
	return result
}
