package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/todo-api/internal/domain/entity"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
)

// TodoRepo реализует repository.TodoRepository
type TodoRepo struct {
	db *gorm.DB
}

// NewTodoRepo создает новый репозиторий задач
func NewTodoRepo(db *gorm.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

// Create создает новую задачу
func (r *TodoRepo) Create(todo *entity.Todo) error {
	return r.db.Create(todo).Error
}

// GetByIDForUser возвращает задачу, только если она принадлежит пользователю
func (r *TodoRepo) GetByIDForUser(id, userID string) (*entity.Todo, error) {
	var todo entity.Todo
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// ListByUser возвращает задачи пользователя, сначала новые
func (r *TodoRepo) ListByUser(userID string) ([]entity.Todo, error) {
	var todos []entity.Todo
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

// ListAllWithUsers возвращает все задачи вместе с владельцами
func (r *TodoRepo) ListAllWithUsers() ([]entity.Todo, error) {
	var todos []entity.Todo
	err := r.db.Preload("User").
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

// Update сохраняет изменения задачи
func (r *TodoRepo) Update(todo *entity.Todo) error {
	return r.db.Save(todo).Error
}

// DeleteForUser удаляет задачу, если она принадлежит пользователю
func (r *TodoRepo) DeleteForUser(id, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет любую задачу по ID (административная операция)
func (r *TodoRepo) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entity.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
