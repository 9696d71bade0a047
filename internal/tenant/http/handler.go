package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venuebase/venue-booking-backend/internal/pkg/request"
	"github.com/venuebase/venue-booking-backend/internal/pkg/response"
	"github.com/venuebase/venue-booking-backend/internal/tenant"
)

type Handler struct {
	service tenant.Service
}

func NewHandler(service tenant.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a new tenant. It is public so that a business can
// onboard before any of its users exist.
func (h *Handler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTenantResponse(t))
}

// Get returns a single tenant by ID.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTenantResponse(t))
}
