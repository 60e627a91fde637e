package service

import (
	"fmt"

	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
)

// UserService отвечает за операции над собственным профилем пользователя
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) (*UserService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &UserService{userRepo: userRepo}, nil
}

// GetProfile возвращает профиль пользователя по ID
func (s *UserService) GetProfile(id string) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}
