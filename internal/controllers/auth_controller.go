package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contactly-be/internal/logger"
	"contactly-be/internal/middleware"
	"contactly-be/internal/models"
	"contactly-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
	log         *logger.Logger
}

func NewAuthController(authService service.AuthService, log *logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		log:         log,
	}
}

// Register handles POST /api/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me handles GET /api/me
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized!"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword handles PUT /api/change-password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	err := ac.authService.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password successfully updated."})
}
