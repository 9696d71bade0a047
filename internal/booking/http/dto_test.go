package http

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/venuebase/venue-booking-backend/internal/booking"
)

func TestCreateBookingRequestValidate(t *testing.T) {
	base := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	req := func(start, end time.Time) *CreateBookingRequest {
		return &CreateBookingRequest{
			VenueID:   uuid.NewString(),
			StartTime: start,
			EndTime:   end,
		}
	}

	t.Run("valid window", func(t *testing.T) {
		assert.NoError(t, req(base, base.Add(2*time.Hour)).Validate())
		assert.NoError(t, req(base, base.Add(time.Hour)).Validate(), "exactly one hour")
		assert.NoError(t, req(base, base.Add(24*time.Hour)).Validate(), "exactly 24 hours")
	})

	t.Run("end must follow start", func(t *testing.T) {
		assert.ErrorIs(t, req(base, base).Validate(), booking.ErrInvalidTimeRange)
		assert.ErrorIs(t, req(base, base.Add(-time.Hour)).Validate(), booking.ErrInvalidTimeRange)
	})

	t.Run("start must be in the future", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		assert.ErrorIs(t, req(past, past.Add(2*time.Hour)).Validate(), booking.ErrStartTimePast)
	})

	t.Run("duration bounds", func(t *testing.T) {
		assert.ErrorIs(t, req(base, base.Add(30*time.Minute)).Validate(), booking.ErrInvalidDuration)
		assert.ErrorIs(t, req(base, base.Add(25*time.Hour)).Validate(), booking.ErrInvalidDuration)
	})
}

func TestCheckAvailabilityRequestValidate(t *testing.T) {
	base := time.Now().Add(48 * time.Hour)

	ok := &CheckAvailabilityRequest{VenueID: uuid.NewString(), StartTime: base, EndTime: base.Add(time.Hour)}
	assert.NoError(t, ok.Validate())

	bad := &CheckAvailabilityRequest{VenueID: uuid.NewString(), StartTime: base, EndTime: base}
	assert.ErrorIs(t, bad.Validate(), booking.ErrInvalidTimeRange)
}
