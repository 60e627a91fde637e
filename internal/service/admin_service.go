package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
)

const (
	adminUsersCacheKey = "admin:users"
	adminUsersCacheTTL = 30 * time.Second
)

// AdminService отвечает за административные операции над пользователями
type AdminService struct {
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
}

// NewAdminService создает новый административный сервис.
// cacheRepo может быть nil — тогда кеширование списка пользователей отключено.
func NewAdminService(userRepo repository.UserRepository, cacheRepo repository.CacheRepository) (*AdminService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &AdminService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
	}, nil
}

// ListUsers возвращает всех пользователей с количеством их задач.
// Результат кешируется на короткий TTL; промах и ошибки кеша не фатальны.
func (s *AdminService) ListUsers() ([]repository.UserWithTodoCount, error) {
	if s.cacheRepo != nil {
		var cached []repository.UserWithTodoCount
		err := s.cacheRepo.GetJSON(adminUsersCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[AdminService] Ошибка чтения кеша списка пользователей: %v", err)
		}
	}

	users, err := s.userRepo.ListWithTodoCounts()
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(adminUsersCacheKey, users, adminUsersCacheTTL); err != nil {
			log.Printf("[AdminService] Ошибка записи кеша списка пользователей: %v", err)
		}
	}
	return users, nil
}

// UpdateUserRole меняет роль пользователя. Уже выданные токены при этом
// не отзываются: их claims остаются прежними до истечения.
func (s *AdminService) UpdateUserRole(userID, role string) (*entity.User, error) {
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, role)
	}

	user, err := s.userRepo.UpdateRole(userID, role)
	if err != nil {
		return nil, err
	}
	log.Printf("[AdminService] Роль пользователя ID=%s изменена на %s", userID, role)

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(adminUsersCacheKey); err != nil {
			log.Printf("[AdminService] Ошибка инвалидации кеша списка пользователей: %v", err)
		}
	}
	return user, nil
}
