package venue

import (
	"net/http"
	"time"

	"github.com/venuebase/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("venue not found")
	ErrNameRequired    = apperror.Validation("venue name is required")
	ErrInvalidCapacity = apperror.Validation("capacity must be greater than 0")
	ErrNegativePrice   = apperror.Validation("price per hour cannot be negative")
	ErrNoFields        = apperror.Validation("no fields to update")
	ErrTenantRequired  = apperror.New(http.StatusBadRequest, "tenant_id is required")
)

// Coordinates is an optional lat/lng pair inside an address.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is stored as a JSONB column on the venues table.
type Address struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	Postcode    string       `json:"postcode"`
	Country     string       `json:"country"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Venue represents a bookable physical space with an hourly price.
type Venue struct {
	ID           string
	TenantID     string
	Name         string
	Description  *string
	Address      Address
	Capacity     int
	PricePerHour float64
	Amenities    []string
	Images       []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SearchFilter defines parameters for the public venue search.
type SearchFilter struct {
	City        string
	CapacityMin int
	CapacityMax int
	PriceMax    float64
	Amenities   []string
	Page        int
	Limit       int
}
