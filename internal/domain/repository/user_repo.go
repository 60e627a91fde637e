package repository

import (
	"github.com/yourusername/todo-api/internal/domain/entity"
)

// UserWithTodoCount представляет пользователя вместе с количеством его задач.
// Используется только в админской выборке списка пользователей.
type UserWithTodoCount struct {
	entity.User
	TodoCount int64 `json:"todo_count"`
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Upsert атомарно создает пользователя или, если email уже занят,
	// обновляет только name и picture. Роль при повторном входе не меняется.
	// Поля user (ID, Role, CreatedAt) после вызова отражают состояние строки в БД.
	Upsert(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// UpdateRole меняет роль пользователя. Единственный путь изменения роли в системе.
	UpdateRole(userID string, role string) (*entity.User, error)
	// ListWithTodoCounts возвращает всех пользователей с количеством задач,
	// отсортированных по дате создания (сначала новые).
	ListWithTodoCounts() ([]UserWithTodoCount, error)
}
