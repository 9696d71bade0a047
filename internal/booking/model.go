package booking

import (
	"time"

	"github.com/venuebase/venue-booking-backend/internal/pkg/apperror"
	"github.com/venuebase/venue-booking-backend/internal/venue"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrVenueNotFound    = apperror.NotFound("venue not found")
	ErrVenueInactive    = apperror.Validation("venue is not available for booking")
	ErrTimeConflict     = apperror.Validation("time slot not available")
	ErrInvalidTimeRange = apperror.Validation("start time must be before end time")
	ErrStartTimePast    = apperror.Validation("start time must be in the future")
	ErrInvalidDuration  = apperror.Validation("booking duration must be between 1 and 24 hours")
	ErrInvalidStatus    = apperror.Validation("invalid booking status")
	ErrCancelledBooking = apperror.Validation("cannot update a cancelled booking")
	ErrCompletedBooking = apperror.Validation("cannot update a completed booking")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsTerminal reports whether no further transition is permitted from s.
// Any non-terminal status may move to any other valid status; there is
// deliberately no stricter adjacency table.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Valid reports whether s is a known booking status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Booking is a reservation of a venue for a half-open time interval
// [StartTime, EndTime), owned by a customer.
type Booking struct {
	ID                    string
	VenueID               string
	CustomerID            string
	StartTime             time.Time
	EndTime               time.Time
	Status                Status
	TotalAmount           float64
	PaymentStatus         PaymentStatus
	StripePaymentIntentID *string
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Display fields joined from venues and users.
	VenueName         string
	VenueAddress      venue.Address
	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
}
