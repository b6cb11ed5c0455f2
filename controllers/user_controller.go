package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/middleware"
	"github.com/davidjirca/dreamhome/services"
)

// UserController exposes account registration and login.
type UserController struct {
	service services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// Register handles POST /api/users/register.
func (uc *UserController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := uc.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/users/login. Returns a JWT on success.
func (uc *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	response, err := uc.service.Login(c.Request.Context(), req)
	if err != nil {
		// Credential failures are always 401, never 403.
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid credentials",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me handles GET /api/users/me for the authenticated user.
func (uc *UserController) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	user, err := uc.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// HealthCheck handles GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "dreamhome-api",
	})
}
