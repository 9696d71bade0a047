package tenant

import (
	"time"

	"github.com/venuebase/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("tenant not found")
	ErrNameRequired = apperror.Validation("tenant name is required")
)

// Tenant is the isolation boundary: venues and bookings are partitioned per tenant.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
