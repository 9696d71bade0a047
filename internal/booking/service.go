package booking

import (
	"context"
	"errors"
	"time"

	"github.com/venuebase/venue-booking-backend/internal/metrics"
	"github.com/venuebase/venue-booking-backend/internal/venue"
)

// CreateRequest carries a customer's booking request. Temporal policy
// (end after start, start in the future, duration within 1-24h, notes
// length) is validated at the HTTP layer before this workflow runs.
type CreateRequest struct {
	VenueID   string
	StartTime time.Time
	EndTime   time.Time
	Notes     *string
}

type Service interface {
	// CheckAvailability reports whether [start, end) is free for the venue.
	// No side effects.
	CheckAvailability(ctx context.Context, venueID string, start, end time.Time, excludeBookingID string) (bool, error)

	// CalculateTotalAmount computes price_per_hour x fractional hours.
	// No rounding is applied; currency rounding is a presentation concern.
	CalculateTotalAmount(ctx context.Context, venueID string, start, end time.Time) (float64, error)

	Create(ctx context.Context, customerID string, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByVenue(ctx context.Context, venueID string, status Status) ([]*Booking, error)
	ListByCustomer(ctx context.Context, customerID string, status Status) ([]*Booking, error)
	ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, newStatus Status) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo         Repository
	venueService venue.Service
}

func NewService(repo Repository, venueService venue.Service) Service {
	return &service{
		repo:         repo,
		venueService: venueService,
	}
}

func (s *service) CheckAvailability(ctx context.Context, venueID string, start, end time.Time, excludeBookingID string) (bool, error) {
	overlap, err := s.repo.HasOverlap(ctx, venueID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

func (s *service) CalculateTotalAmount(ctx context.Context, venueID string, start, end time.Time) (float64, error) {
	v, err := s.venueService.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, venue.ErrNotFound) {
			return 0, ErrVenueNotFound
		}
		return 0, err
	}

	return v.PricePerHour * end.Sub(start).Hours(), nil
}

func (s *service) Create(ctx context.Context, customerID string, req CreateRequest) (*Booking, error) {
	// 1. Venue must exist.
	v, err := s.venueService.Get(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venue.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	// 2. Venue must be active.
	if !v.IsActive {
		return nil, ErrVenueInactive
	}

	// 3. Slot must be free.
	available, err := s.CheckAvailability(ctx, req.VenueID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if !available {
		metrics.IncBookingConflict()
		return nil, ErrTimeConflict
	}

	// 4. Compute total amount.
	amount, err := s.CalculateTotalAmount(ctx, req.VenueID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 5. Persist. The repository re-checks the overlap transactionally, so a
	// concurrent create that slipped past step 3 surfaces as ErrTimeConflict.
	b := &Booking{
		VenueID:       req.VenueID,
		CustomerID:    customerID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        StatusPending,
		TotalAmount:   amount,
		PaymentStatus: PaymentPending,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByVenue(ctx context.Context, venueID string, status Status) ([]*Booking, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByVenue(ctx, venueID, status)
}

func (s *service) ListByCustomer(ctx context.Context, customerID string, status Status) ([]*Booking, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByCustomer(ctx, customerID, status)
}

func (s *service) ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Booking, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, page, limit)
}

func (s *service) UpdateStatus(ctx context.Context, id string, newStatus Status) (*Booking, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Terminal states admit no mutation.
	switch b.Status {
	case StatusCancelled:
		return nil, ErrCancelledBooking
	case StatusCompleted:
		return nil, ErrCompletedBooking
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}
