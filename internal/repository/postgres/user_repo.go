package postgres

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert атомарно создает или обновляет пользователя по email.
// Конкурентные входы с одним и тем же email безопасны: уникальный индекс
// по email плюс ON CONFLICT DO UPDATE дают ровно одну строку на email.
// Роль при конфликте намеренно не обновляется — она меняется только
// административной операцией UpdateRole.
func (r *UserRepo) Upsert(user *entity.User) error {
	err := r.db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "picture", "updated_at"}),
		},
		clause.Returning{},
	).Create(user).Error
	if err != nil {
		log.Printf("[UserRepo.Upsert] Ошибка при upsert пользователя email=%s: %v", user.Email, err)
		return err
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateRole меняет роль пользователя и возвращает обновленную запись
func (r *UserRepo) UpdateRole(userID string, role string) (*entity.User, error) {
	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		log.Printf("[UserRepo.UpdateRole] Ошибка при обновлении роли пользователя ID=%s: %v", userID, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(userID)
}

// ListWithTodoCounts возвращает всех пользователей с количеством их задач
func (r *UserRepo) ListWithTodoCounts() ([]repository.UserWithTodoCount, error) {
	var users []repository.UserWithTodoCount
	err := r.db.Model(&entity.User{}).
		Select("users.*, COUNT(todos.id) AS todo_count").
		Joins("LEFT JOIN todos ON todos.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
