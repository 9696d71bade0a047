package http

import (
	"time"

	"github.com/venuebase/venue-booking-backend/internal/booking"
	"github.com/venuebase/venue-booking-backend/internal/venue"
)

const (
	minBookingDuration = time.Hour
	maxBookingDuration = 24 * time.Hour
)

// CreateBookingRequest defines the payload for creating a booking.
// Temporal policy constraints live here, not in the service: the booking
// workflow treats them as a precondition contract.
type CreateBookingRequest struct {
	VenueID   string    `json:"venue_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Notes     *string   `json:"notes" binding:"omitempty,max=1000"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return booking.ErrInvalidTimeRange
	}
	if r.StartTime.Before(time.Now()) {
		return booking.ErrStartTimePast
	}
	if d := r.EndTime.Sub(r.StartTime); d < minBookingDuration || d > maxBookingDuration {
		return booking.ErrInvalidDuration
	}
	return nil
}

// CheckAvailabilityRequest defines the payload for the availability probe.
type CheckAvailabilityRequest struct {
	VenueID   string    `json:"venue_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CheckAvailabilityRequest.
func (r *CheckAvailabilityRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

// UpdateStatusRequest defines the payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// AvailabilityResponse reports whether a slot is free.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// BookingResponse is the booking row flattened with joined display fields.
type BookingResponse struct {
	ID                    string        `json:"id"`
	VenueID               string        `json:"venue_id"`
	CustomerID            string        `json:"customer_id"`
	StartTime             time.Time     `json:"start_time"`
	EndTime               time.Time     `json:"end_time"`
	Status                string        `json:"status"`
	TotalAmount           float64       `json:"total_amount"`
	PaymentStatus         string        `json:"payment_status"`
	StripePaymentIntentID *string       `json:"stripe_payment_intent_id"`
	Notes                 *string       `json:"notes"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
	VenueName             string        `json:"venue_name"`
	VenueAddress          venue.Address `json:"venue_address"`
	CustomerFirstName     string        `json:"customer_first_name"`
	CustomerLastName      string        `json:"customer_last_name"`
	CustomerEmail         string        `json:"customer_email"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                    b.ID,
		VenueID:               b.VenueID,
		CustomerID:            b.CustomerID,
		StartTime:             b.StartTime,
		EndTime:               b.EndTime,
		Status:                string(b.Status),
		TotalAmount:           b.TotalAmount,
		PaymentStatus:         string(b.PaymentStatus),
		StripePaymentIntentID: b.StripePaymentIntentID,
		Notes:                 b.Notes,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
		VenueName:             b.VenueName,
		VenueAddress:          b.VenueAddress,
		CustomerFirstName:     b.CustomerFirstName,
		CustomerLastName:      b.CustomerLastName,
		CustomerEmail:         b.CustomerEmail,
	}
}
