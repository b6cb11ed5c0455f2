package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/middleware"
	"github.com/davidjirca/dreamhome/services"
)

// SavedSearchController exposes the saved-search endpoints. All routes
// require authentication.
type SavedSearchController struct {
	service services.SavedSearchService
}

// NewSavedSearchController creates a new SavedSearchController.
func NewSavedSearchController(service services.SavedSearchService) *SavedSearchController {
	return &SavedSearchController{service: service}
}

// Create handles POST /api/saved-searches.
func (sc *SavedSearchController) Create(c *gin.Context) {
	var req dto.SavedSearchCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	search, err := sc.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, search)
}

// List handles GET /api/saved-searches.
func (sc *SavedSearchController) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	searches, err := sc.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, searches)
}

// Get handles GET /api/saved-searches/:id.
func (sc *SavedSearchController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid saved search id")
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	search, err := sc.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, search)
}

// Update handles PATCH /api/saved-searches/:id.
func (sc *SavedSearchController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid saved search id")
		return
	}

	var req dto.SavedSearchUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	search, err := sc.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, search)
}

// Delete handles DELETE /api/saved-searches/:id.
func (sc *SavedSearchController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid saved search id")
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	deleted, err := sc.service.Delete(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "saved search not found"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "saved search deleted"})
}
