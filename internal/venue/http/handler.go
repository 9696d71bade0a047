package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venuebase/venue-booking-backend/internal/auth"
	"github.com/venuebase/venue-booking-backend/internal/pkg/request"
	"github.com/venuebase/venue-booking-backend/internal/pkg/response"
	"github.com/venuebase/venue-booking-backend/internal/venue"
)

type Handler struct {
	service venue.Service
}

func NewHandler(service venue.Service) *Handler {
	return &Handler{service: service}
}

// Create adds a venue to the caller's tenant.
func (h *Handler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	v, err := h.service.Create(c.Request.Context(), venue.CreateRequest{
		TenantID:     auth.GetTenantID(c),
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address.toDomain(),
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Amenities:    req.Amenities,
		Images:       req.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewVenueResponse(v))
}

// List returns the caller's tenant venues, paginated.
func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	params.Normalize()

	venues, total, err := h.service.ListByTenant(c.Request.Context(), auth.GetTenantID(c), params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.Limit, total))
}

// Get returns a single venue scoped to the caller's tenant.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue ID"})
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetTenantID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVenueResponse(v))
}

// Update applies the provided fields to a venue.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue ID"})
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	v, err := h.service.Update(c.Request.Context(), uri.ID, auth.GetTenantID(c), req.toFields())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVenueResponse(v))
}

// Delete removes a venue from the caller's tenant.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetTenantID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Search lists active venues matching the given filters, across tenants.
func (h *Handler) Search(c *gin.Context) {
	var req SearchVenuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	venues, total, err := h.service.Search(c.Request.Context(), req.toFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}
