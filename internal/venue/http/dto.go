package http

import (
	"strings"
	"time"

	"github.com/venuebase/venue-booking-backend/internal/pkg/request"
	"github.com/venuebase/venue-booking-backend/internal/venue"
)

// AddressBody mirrors venue.Address for request payloads.
type AddressBody struct {
	Street      string             `json:"street" binding:"required"`
	City        string             `json:"city" binding:"required"`
	Postcode    string             `json:"postcode" binding:"required"`
	Country     string             `json:"country" binding:"required"`
	Coordinates *venue.Coordinates `json:"coordinates"`
}

func (a AddressBody) toDomain() venue.Address {
	return venue.Address{
		Street:      a.Street,
		City:        a.City,
		Postcode:    a.Postcode,
		Country:     a.Country,
		Coordinates: a.Coordinates,
	}
}

// CreateVenueRequest defines the payload for creating a venue.
type CreateVenueRequest struct {
	Name         string      `json:"name" binding:"required"`
	Description  *string     `json:"description"`
	Address      AddressBody `json:"address" binding:"required"`
	Capacity     int         `json:"capacity" binding:"required,gt=0"`
	PricePerHour float64     `json:"price_per_hour" binding:"min=0"`
	Amenities    []string    `json:"amenities"`
	Images       []string    `json:"images"`
}

// UpdateVenueRequest carries optional fields; only present ones are applied.
type UpdateVenueRequest struct {
	Name         *string      `json:"name"`
	Description  *string      `json:"description"`
	Address      *AddressBody `json:"address"`
	Capacity     *int         `json:"capacity"`
	PricePerHour *float64     `json:"price_per_hour"`
	Amenities    *[]string    `json:"amenities"`
	Images       *[]string    `json:"images"`
	IsActive     *bool        `json:"is_active"`
}

func (r UpdateVenueRequest) toFields() venue.UpdateFields {
	fields := venue.UpdateFields{
		Name:         r.Name,
		Description:  r.Description,
		Capacity:     r.Capacity,
		PricePerHour: r.PricePerHour,
		Amenities:    r.Amenities,
		Images:       r.Images,
		IsActive:     r.IsActive,
	}
	if r.Address != nil {
		addr := r.Address.toDomain()
		fields.Address = &addr
	}
	return fields
}

// SearchVenuesRequest defines query parameters for the public venue search.
type SearchVenuesRequest struct {
	request.ListParams
	City        string  `form:"city"`
	CapacityMin int     `form:"capacity_min" binding:"omitempty,min=1"`
	CapacityMax int     `form:"capacity_max" binding:"omitempty,min=1"`
	PriceMax    float64 `form:"price_max" binding:"omitempty,min=0"`
	Amenities   string  `form:"amenities"` // comma-separated
}

func (r SearchVenuesRequest) toFilter() venue.SearchFilter {
	var amenities []string
	if r.Amenities != "" {
		for _, a := range strings.Split(r.Amenities, ",") {
			if a = strings.TrimSpace(a); a != "" {
				amenities = append(amenities, a)
			}
		}
	}
	return venue.SearchFilter{
		City:        r.City,
		CapacityMin: r.CapacityMin,
		CapacityMax: r.CapacityMax,
		PriceMax:    r.PriceMax,
		Amenities:   amenities,
		Page:        r.Page,
		Limit:       r.Limit,
	}
}

// VenueResponse is the shape of venue data returned by the API.
type VenueResponse struct {
	ID           string        `json:"id"`
	TenantID     string        `json:"tenant_id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description"`
	Address      venue.Address `json:"address"`
	Capacity     int           `json:"capacity"`
	PricePerHour float64       `json:"price_per_hour"`
	Amenities    []string      `json:"amenities"`
	Images       []string      `json:"images"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	amenities := v.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := v.Images
	if images == nil {
		images = []string{}
	}

	return VenueResponse{
		ID:           v.ID,
		TenantID:     v.TenantID,
		Name:         v.Name,
		Description:  v.Description,
		Address:      v.Address,
		Capacity:     v.Capacity,
		PricePerHour: v.PricePerHour,
		Amenities:    amenities,
		Images:       images,
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
