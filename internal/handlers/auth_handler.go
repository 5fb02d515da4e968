package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"callcenter/internal/models"
	"callcenter/internal/services"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary      Sign in
// @Description  Checks the credentials and returns an access token and a refresh token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	user, tokens, err := h.userService.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		respondError(c, "[auth][login]", err)
		return
	}
	log.Printf("[auth][login][ok] userID=%d role=%d", user.ID, user.RoleID)
	c.JSON(http.StatusOK, gin.H{
		"access_token":      tokens.AccessToken,
		"access_expires_at": tokens.AccessExpiresAt,
		"refresh_token":     tokens.RefreshToken,
		"user":              user,
	})
}

// @Summary      Refresh tokens
// @Description  Rotates the refresh token and returns a fresh access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  services.Tokens
// @Failure      401   {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokens, err := h.userService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, "[auth][refresh]", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "[auth][me]", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
		return
	}
	c.JSON(http.StatusOK, user)
}
