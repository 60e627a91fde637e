package repository

import (
	"github.com/yourusername/todo-api/internal/domain/entity"
)

// TodoRepository определяет методы для работы с задачами
type TodoRepository interface {
	Create(todo *entity.Todo) error
	// GetByIDForUser возвращает задачу только если она принадлежит пользователю.
	GetByIDForUser(id, userID string) (*entity.Todo, error)
	// ListByUser возвращает задачи пользователя, отсортированные по дате создания (сначала новые).
	ListByUser(userID string) ([]entity.Todo, error)
	// ListAllWithUsers возвращает все задачи вместе с владельцами. Только для администраторов.
	ListAllWithUsers() ([]entity.Todo, error)
	Update(todo *entity.Todo) error
	// DeleteForUser удаляет задачу, если она принадлежит пользователю.
	DeleteForUser(id, userID string) error
	// Delete удаляет любую задачу по ID. Только для администраторов.
	Delete(id string) error
}
