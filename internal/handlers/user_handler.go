package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"callcenter/internal/models"
	"callcenter/internal/services"
)

type UserHandler struct {
	Service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

type createUserRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	RoleID         int    `json:"role_id" binding:"required"`
	TelegramChatID int64  `json:"telegram_chat_id"`
}

// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      createUserRequest  true  "User"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := &models.User{
		FullName:       req.FullName,
		Email:          req.Email,
		RoleID:         req.RoleID,
		TelegramChatID: req.TelegramChatID,
	}
	if err := h.Service.CreateUserWithPassword(c.Request.Context(), user, req.Password); err != nil {
		respondError(c, "[user][create]", err)
		return
	}
	log.Printf("[user][create][ok] id=%d role=%d", user.ID, user.RoleID)
	c.JSON(http.StatusCreated, user)
}

// @Summary      List users
// @Tags         Users
// @Produce      json
// @Param        role_id  query  int  false  "Only this role"
// @Success      200  {array}  models.User
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var roleID *int
	if v, ok := c.GetQuery("role_id"); ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role_id"})
			return
		}
		roleID = &id
	}
	users, err := h.Service.ListUsers(c.Request.Context(), roleID)
	if err != nil {
		respondError(c, "[user][list]", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}
