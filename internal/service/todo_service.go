package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
)

// CreateTodoInput — данные для создания задачи
type CreateTodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// UpdateTodoInput — данные для частичного обновления задачи.
// Nil-поля не меняются.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
}

// TodoService отвечает за задачи пользователей.
// Все операции пользователя ограничены его собственными задачами;
// чужая задача неотличима от несуществующей (ErrNotFound).
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService создает новый сервис задач
func NewTodoService(todoRepo repository.TodoRepository) (*TodoService, error) {
	if todoRepo == nil {
		return nil, fmt.Errorf("todo repository is required")
	}
	return &TodoService{todoRepo: todoRepo}, nil
}

// ListTodos возвращает задачи пользователя, сначала новые
func (s *TodoService) ListTodos(userID string) ([]entity.Todo, error) {
	return s.todoRepo.ListByUser(userID)
}

// GetTodo возвращает задачу пользователя по ID
func (s *TodoService) GetTodo(id, userID string) (*entity.Todo, error) {
	return s.todoRepo.GetByIDForUser(id, userID)
}

// CreateTodo создает новую задачу пользователя
func (s *TodoService) CreateTodo(userID string, input CreateTodoInput) (*entity.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	todo := &entity.Todo{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
		UserID:      userID,
	}
	if err := s.todoRepo.Create(todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodo частично обновляет задачу пользователя
func (s *TodoService) UpdateTodo(id, userID string, input UpdateTodoInput) (*entity.Todo, error) {
	todo, err := s.todoRepo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
		}
		todo.Title = title
	}
	if input.Description != nil {
		todo.Description = strings.TrimSpace(*input.Description)
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteTodo удаляет задачу пользователя
func (s *TodoService) DeleteTodo(id, userID string) error {
	return s.todoRepo.DeleteForUser(id, userID)
}

// ListAllTodos возвращает все задачи с владельцами (административная операция)
func (s *TodoService) ListAllTodos() ([]entity.Todo, error) {
	return s.todoRepo.ListAllWithUsers()
}

// DeleteAnyTodo удаляет любую задачу (административная операция)
func (s *TodoService) DeleteAnyTodo(id string) error {
	return s.todoRepo.Delete(id)
}
