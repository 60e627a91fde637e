package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/middleware"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
	"github.com/yourusername/todo-api/internal/service"
)

// TodoHandler обрабатывает запросы, связанные с задачами
type TodoHandler struct {
	todoService *service.TodoService
}

// NewTodoHandler создает новый обработчик задач
func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest представляет запрос на создание задачи
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTodoRequest представляет запрос на частичное обновление задачи
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
}

// ListTodos возвращает задачи текущего пользователя
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	todos, err := h.todoService.ListTodos(userID)
	if err != nil {
		log.Printf("[TodoHandler] Ошибка получения задач пользователя ID=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodo возвращает задачу текущего пользователя по ID
func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	todo, err := h.todoService.GetTodo(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// CreateTodo создает новую задачу
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoService.CreateTodo(userID, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		log.Printf("[TodoHandler] Ошибка создания задачи для пользователя ID=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create todo"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo частично обновляет задачу текущего пользователя
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Param("id"), userID, service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		default:
			log.Printf("[TodoHandler] Ошибка обновления задачи ID=%s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		}
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo удаляет задачу текущего пользователя
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.todoService.DeleteTodo(c.Param("id"), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

// ListAllTodos возвращает все задачи с владельцами (только для администраторов)
func (h *TodoHandler) ListAllTodos(c *gin.Context) {
	todos, err := h.todoService.ListAllTodos()
	if err != nil {
		log.Printf("[TodoHandler] Ошибка получения всех задач: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch all todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// DeleteAnyTodo удаляет любую задачу (только для администраторов)
func (h *TodoHandler) DeleteAnyTodo(c *gin.Context) {
	if err := h.todoService.DeleteAnyTodo(c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted by admin"})
}
