package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/middleware"
	"github.com/davidjirca/dreamhome/services"
)

// PropertyController exposes the property lifecycle endpoints.
type PropertyController struct {
	service services.PropertyService
}

// NewPropertyController creates a new PropertyController.
func NewPropertyController(service services.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

// Create handles POST /api/properties. The new listing starts as a draft
// owned by the authenticated user.
func (pc *PropertyController) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	property, err := pc.service.Create(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// GetByID handles GET /api/properties/:id.
func (pc *PropertyController) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid property id")
		return
	}

	property, err := pc.service.GetByID(c.Request.Context(), id, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// GetBySlug handles GET /api/properties/slug/:slug and counts the view.
func (pc *PropertyController) GetBySlug(c *gin.Context) {
	property, err := pc.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Update handles PATCH /api/properties/:id. Owner only.
func (pc *PropertyController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid property id")
		return
	}

	var patch dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	requesterID, _ := middleware.CurrentUserID(c)

	property, err := pc.service.Update(c.Request.Context(), id, patch, requesterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Delete handles DELETE /api/properties/:id. Owner only; soft delete.
func (pc *PropertyController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid property id")
		return
	}

	requesterID, _ := middleware.CurrentUserID(c)

	deleted, err := pc.service.Delete(c.Request.Context(), id, requesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "property not found"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "property deleted"})
}

// Publish handles POST /api/properties/:id/publish. Owner only; the
// listing must have at least one photo.
func (pc *PropertyController) Publish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid property id")
		return
	}

	requesterID, _ := middleware.CurrentUserID(c)

	property, err := pc.service.Publish(c.Request.Context(), id, requesterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}
