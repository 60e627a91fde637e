package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/handler/dto"
	apperrors "github.com/yourusername/todo-api/internal/pkg/errors"
	"github.com/yourusername/todo-api/internal/service"
)

// AdminHandler обрабатывает административные запросы
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// UpdateRoleRequest представляет запрос на изменение роли пользователя
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsers возвращает всех пользователей с количеством их задач
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		log.Printf("[AdminHandler] Ошибка получения списка пользователей: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, dto.NewAdminUserDTOs(users))
}

// UpdateUserRole меняет роль пользователя.
// Единственный путь изменения роли: путь логина роль не трогает.
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user, err := h.adminService.UpdateUserRole(c.Param("id"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.Printf("[AdminHandler] Ошибка изменения роли пользователя ID=%s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User role updated successfully",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
