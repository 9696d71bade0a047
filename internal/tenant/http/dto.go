package http

import (
	"time"

	"github.com/venuebase/venue-booking-backend/internal/tenant"
)

type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}
