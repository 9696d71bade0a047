package booking

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebase/venue-booking-backend/internal/venue"
)

// memoryRepository is an in-memory Repository used to exercise the booking
// workflow without a database. Create performs its overlap check under the
// same lock as the insert, mirroring the transactional guarantee of the
// real repository.
type memoryRepository struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	venues   map[string]*venue.Venue
}

func newMemoryRepository(venues map[string]*venue.Venue) *memoryRepository {
	return &memoryRepository{
		bookings: make(map[string]*Booking),
		venues:   venues,
	}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overlapsLocked(b.VenueID, b.StartTime, b.EndTime, "") {
		return ErrTimeConflict
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepository) ListByVenue(_ context.Context, venueID string, status Status) ([]*Booking, error) {
	return r.filter(func(b *Booking) bool {
		return b.VenueID == venueID && (status == "" || b.Status == status)
	}), nil
}

func (r *memoryRepository) ListByCustomer(_ context.Context, customerID string, status Status) ([]*Booking, error) {
	return r.filter(func(b *Booking) bool {
		return b.CustomerID == customerID && (status == "" || b.Status == status)
	}), nil
}

func (r *memoryRepository) ListByTenant(_ context.Context, tenantID string, page, limit int) ([]*Booking, int, error) {
	matches := r.filter(func(b *Booking) bool {
		v, ok := r.venues[b.VenueID]
		return ok && v.TenantID == tenantID
	})

	total := len(matches)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepository) HasOverlap(_ context.Context, venueID string, start, end time.Time, excludeBookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapsLocked(venueID, start, end, excludeBookingID), nil
}

func (r *memoryRepository) overlapsLocked(venueID string, start, end time.Time, excludeBookingID string) bool {
	for _, b := range r.bookings {
		if b.VenueID != venueID || b.Status == StatusCancelled || b.ID == excludeBookingID {
			continue
		}
		// Half-open intervals: [a,b) and [c,d) intersect iff a < d AND c < b.
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			return true
		}
	}
	return false
}

func (r *memoryRepository) filter(keep func(*Booking) bool) []*Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

// fakeVenueService serves venues from a map. Only the lookup methods are
// implemented; the rest of the interface is never reached by these tests.
type fakeVenueService struct {
	venue.Service
	venues map[string]*venue.Venue
}

func (f *fakeVenueService) Get(_ context.Context, id string) (*venue.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venue.ErrNotFound
	}
	return v, nil
}

func newTestService(venues ...*venue.Venue) (Service, *memoryRepository) {
	venueMap := make(map[string]*venue.Venue)
	for _, v := range venues {
		venueMap[v.ID] = v
	}
	repo := newMemoryRepository(venueMap)
	return NewService(repo, &fakeVenueService{venues: venueMap}), repo
}

func testVenue(pricePerHour float64) *venue.Venue {
	return &venue.Venue{
		ID:           uuid.NewString(),
		TenantID:     uuid.NewString(),
		Name:         "Grand Hall",
		Capacity:     120,
		PricePerHour: pricePerHour,
		IsActive:     true,
	}
}

func slot(dayOffset, hour int) time.Time {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, dayOffset).Add(time.Duration(hour) * time.Hour)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.NewString()

	t.Run("success computes amount and defaults", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)

		b, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 14),
			EndTime:   slot(0, 16),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, customerID, b.CustomerID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, PaymentPending, b.PaymentStatus)
		assert.InDelta(t, 100.0, b.TotalAmount, 1e-9, "2 hours at 50/hour")
	})

	t.Run("fractional hours are billed fractionally", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)

		b, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 14),
			EndTime:   slot(0, 14).Add(90 * time.Minute),
		})
		require.NoError(t, err)
		assert.InDelta(t, 75.0, b.TotalAmount, 1e-9)
	})

	t.Run("unknown venue", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   uuid.NewString(),
			StartTime: slot(0, 14),
			EndTime:   slot(0, 16),
		})
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("inactive venue", func(t *testing.T) {
		v := testVenue(50)
		v.IsActive = false
		svc, _ := newTestService(v)

		_, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 14),
			EndTime:   slot(0, 16),
		})
		assert.ErrorIs(t, err, ErrVenueInactive)
	})

	t.Run("overlapping slot is rejected and leaves no booking behind", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)

		_, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 14),
			EndTime:   slot(0, 16),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 15),
			EndTime:   slot(0, 17),
		})
		assert.ErrorIs(t, err, ErrTimeConflict)

		all, err := svc.ListByVenue(ctx, v.ID, "")
		require.NoError(t, err)
		assert.Len(t, all, 1, "failed create must not persist anything")
	})

	t.Run("back-to-back slots do not conflict", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)

		_, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 12),
			EndTime:   slot(0, 14),
		})
		require.NoError(t, err)

		// Ends exactly when the existing one starts.
		_, err = svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 10),
			EndTime:   slot(0, 12),
		})
		require.NoError(t, err)

		// Starts exactly when the existing one ends.
		_, err = svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 14),
			EndTime:   slot(0, 16),
		})
		require.NoError(t, err)
	})

	t.Run("cancelled bookings free their slot", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)

		first, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 10),
			EndTime:   slot(0, 12),
		})
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, first.ID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 10),
			EndTime:   slot(0, 12),
		})
		assert.NoError(t, err, "the slot must be reusable after cancellation")
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	v := testVenue(50)
	svc, _ := newTestService(v)

	existing, err := svc.Create(ctx, uuid.NewString(), CreateRequest{
		VenueID:   v.ID,
		StartTime: slot(0, 14),
		EndTime:   slot(0, 16),
	})
	require.NoError(t, err)

	t.Run("overlap reported as unavailable", func(t *testing.T) {
		free, err := svc.CheckAvailability(ctx, v.ID, slot(0, 15), slot(0, 17), "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("adjacent slot is available", func(t *testing.T) {
		free, err := svc.CheckAvailability(ctx, v.ID, slot(0, 16), slot(0, 18), "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("excluding the booking itself", func(t *testing.T) {
		free, err := svc.CheckAvailability(ctx, v.ID, slot(0, 14), slot(0, 16), existing.ID)
		require.NoError(t, err)
		assert.True(t, free, "a booking never conflicts with itself")
	})

	t.Run("other venues are unaffected", func(t *testing.T) {
		free, err := svc.CheckAvailability(ctx, uuid.NewString(), slot(0, 14), slot(0, 16), "")
		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestCalculateTotalAmount(t *testing.T) {
	ctx := context.Background()
	v := testVenue(80)
	svc, _ := newTestService(v)

	amount, err := svc.CalculateTotalAmount(ctx, v.ID, slot(0, 9), slot(0, 9).Add(150*time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 200.0, amount, 1e-9, "2.5 hours at 80/hour")

	_, err = svc.CalculateTotalAmount(ctx, uuid.NewString(), slot(0, 9), slot(0, 10))
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.NewString()

	create := func(t *testing.T, svc Service, venueID string, hour int) *Booking {
		t.Helper()
		b, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   venueID,
			StartTime: slot(0, hour),
			EndTime:   slot(0, hour+1),
		})
		require.NoError(t, err)
		return b
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		b := create(t, svc, v.ID, 10)

		updated, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("confirmed to cancelled", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		b := create(t, svc, v.ID, 10)

		_, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		require.NoError(t, err)

		updated, err := svc.Cancel(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		b := create(t, svc, v.ID, 10)

		_, err := svc.UpdateStatus(ctx, b.ID, Status("archived"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)

		_, err := svc.UpdateStatus(ctx, uuid.NewString(), StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		b := create(t, svc, v.ID, 10)

		_, err := svc.Cancel(ctx, b.ID)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		assert.ErrorIs(t, err, ErrCancelledBooking)

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status, "rejected transition must not change the row")
	})

	t.Run("completed is terminal", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		b := create(t, svc, v.ID, 10)

		_, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, b.ID)
		assert.ErrorIs(t, err, ErrCompletedBooking)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("tenant listing paginates newest first", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		customerID := uuid.NewString()

		for i := 0; i < 25; i++ {
			_, err := svc.Create(ctx, customerID, CreateRequest{
				VenueID:   v.ID,
				StartTime: slot(i, 10),
				EndTime:   slot(i, 11),
			})
			require.NoError(t, err)
		}

		page1, total, err := svc.ListByTenant(ctx, v.TenantID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		require.Len(t, page1, 20)
		assert.Equal(t, slot(24, 10), page1[0].StartTime, "newest booking first")

		page2, total, err := svc.ListByTenant(ctx, v.TenantID, 2, 20)
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		assert.Len(t, page2, 5)

		// A page past the last row is empty but still reports the true total.
		page3, total, err := svc.ListByTenant(ctx, v.TenantID, 3, 20)
		require.NoError(t, err)
		assert.Empty(t, page3)
		assert.Equal(t, 25, total)

		_, total, err = svc.ListByTenant(ctx, uuid.NewString(), 1, 20)
		require.NoError(t, err)
		assert.Zero(t, total, "other tenants see nothing")
	})

	t.Run("status filter", func(t *testing.T) {
		v := testVenue(50)
		svc, _ := newTestService(v)
		customerID := uuid.NewString()

		a, err := svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 10),
			EndTime:   slot(0, 11),
		})
		require.NoError(t, err)
		_, err = svc.Create(ctx, customerID, CreateRequest{
			VenueID:   v.ID,
			StartTime: slot(0, 11),
			EndTime:   slot(0, 12),
		})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, a.ID, StatusConfirmed)
		require.NoError(t, err)

		confirmed, err := svc.ListByCustomer(ctx, customerID, StatusConfirmed)
		require.NoError(t, err)
		require.Len(t, confirmed, 1)
		assert.Equal(t, a.ID, confirmed[0].ID)

		_, err = svc.ListByCustomer(ctx, customerID, Status("bogus"))
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = svc.ListByVenue(ctx, v.ID, Status("bogus"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	ctx := context.Background()
	v := testVenue(50)
	svc, _ := newTestService(v)

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, uuid.NewString(), CreateRequest{
				VenueID:   v.ID,
				StartTime: slot(0, 14),
				EndTime:   slot(0, 16),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		default:
			require.ErrorIs(t, err, ErrTimeConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, created, "exactly one racing create may win")
	assert.Equal(t, attempts-1, conflicts)

	all, err := svc.ListByVenue(ctx, v.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
