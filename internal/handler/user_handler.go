package handler

import (
	"errors"
	"net/http"

	"trip_logger/internal/middleware"
	"trip_logger/internal/model"
	"trip_logger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler handles the admin user management surface
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// sanitize strips stored passwords before a user record leaves the API
func sanitize(u model.User) model.User {
	u.Password = ""
	return u
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		respondStoreError(c, err, "Failed to retrieve users")
		return
	}

	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitize(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) AddUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.AddUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("Failed to add user")
		respondStoreError(c, err, "Failed to add user")
		return
	}
	c.JSON(http.StatusCreated, sanitize(*user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("Failed to update user")
			respondStoreError(c, err, "Failed to update user")
		}
		return
	}
	c.JSON(http.StatusOK, sanitize(*user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, _ := c.Get(middleware.AuthUserKey)
	actor, _ := actorID.(string)

	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id"), actor); err != nil {
		if errors.Is(err, service.ErrSelfDeletion) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("Failed to delete user")
		respondStoreError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// RegisterUserRoutes registers the admin user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMW, adminMW)
	{
		users.GET("", h.ListUsers)
		users.POST("", h.AddUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}
