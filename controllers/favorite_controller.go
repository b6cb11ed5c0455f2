package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/middleware"
	"github.com/davidjirca/dreamhome/services"
)

// FavoriteController exposes the favorites endpoints. All routes require
// authentication.
type FavoriteController struct {
	service services.FavoriteService
}

// NewFavoriteController creates a new FavoriteController.
func NewFavoriteController(service services.FavoriteService) *FavoriteController {
	return &FavoriteController{service: service}
}

// Add handles POST /api/favorites.
func (fc *FavoriteController) Add(c *gin.Context) {
	var req dto.FavoriteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	favorite, err := fc.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// List handles GET /api/favorites.
func (fc *FavoriteController) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	favorites, err := fc.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

// Remove handles DELETE /api/favorites/:property_id.
func (fc *FavoriteController) Remove(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		respondBadRequest(c, "invalid property id")
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	removed, err := fc.service.Remove(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "favorite not found"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "favorite removed"})
}
