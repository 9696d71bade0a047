package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a new booking. The overlap check and the insert run in
	// one serializable transaction, and the bookings table carries an
	// exclusion constraint over (venue_id, time range), so two concurrent
	// creates for an overlapping window cannot both commit.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByVenue(ctx context.Context, venueID string, status Status) ([]*Booking, error)
	ListByCustomer(ctx context.Context, customerID string, status Status) ([]*Booking, error)
	ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// HasOverlap checks if any non-cancelled booking for the venue intersects
	// [start, end) under half-open semantics. excludeBookingID is used during
	// updates to ignore the booking itself.
	HasOverlap(ctx context.Context, venueID string, start, end time.Time, excludeBookingID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const bookingJoinColumns = `
	b.id, b.venue_id, b.customer_id, b.start_time, b.end_time,
	b.status, b.total_amount, b.payment_status, b.stripe_payment_intent_id, b.notes,
	b.created_at, b.updated_at,
	v.name AS venue_name, v.address AS venue_address,
	u.first_name AS customer_first_name, u.last_name AS customer_last_name, u.email AS customer_email`

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	overlap, err := hasOverlap(ctx, tx, b.VenueID, b.StartTime, b.EndTime, "")
	if err != nil {
		return err
	}
	if overlap {
		return ErrTimeConflict
	}

	const query = `
		INSERT INTO public.bookings (venue_id, customer_id, start_time, end_time, status, total_amount, payment_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(
		ctx, query,
		b.VenueID, b.CustomerID, b.StartTime, b.EndTime, b.Status, b.TotalAmount, b.PaymentStatus, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isConflictErr(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isConflictErr(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil
}

// isConflictErr recognizes the database-level outcomes of two bookings racing
// for the same slot: the exclusion constraint firing, or the serializable
// transaction being aborted.
func isConflictErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.ExclusionViolation || pgErr.Code == pgerrcode.SerializationFailure
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.venues v ON b.venue_id = v.id
		JOIN public.users u ON b.customer_id = u.id
		WHERE b.id = $1
	`, bookingJoinColumns)

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListByVenue(ctx context.Context, venueID string, status Status) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.venue_id": venueID}, status)
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string, status Status) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.customer_id": customerID}, status)
}

func (r *pgxRepository) list(ctx context.Context, pred squirrel.Eq, status Status) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingJoinColumns).
		From("public.bookings b").
		Join("public.venues v ON b.venue_id = v.id").
		Join("public.users u ON b.customer_id = u.id").
		Where(pred)

	if status != "" {
		query = query.Where(squirrel.Eq{"b.status": status})
	}

	sql, args, err := query.OrderBy("b.start_time DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Booking, int, error) {
	// Total is counted separately so a page past the last row still reports
	// the true count.
	const countQuery = `
		SELECT count(*)
		FROM public.bookings b
		JOIN public.venues v ON b.venue_id = v.id
		WHERE v.tenant_id = $1
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenant bookings failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.venues v ON b.venue_id = v.id
		JOIN public.users u ON b.customer_id = u.id
		WHERE v.tenant_id = $1
		ORDER BY b.start_time DESC
		LIMIT $2 OFFSET $3
	`, bookingJoinColumns)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenant bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, venueID string, start, end time.Time, excludeBookingID string) (bool, error) {
	return hasOverlap(ctx, r.pool, venueID, start, end, excludeBookingID)
}

func hasOverlap(ctx context.Context, q queryRower, venueID string, start, end time.Time, excludeBookingID string) (bool, error) {
	// Half-open overlap: [a,b) and [c,d) intersect iff a < d AND c < b.
	// A booking ending exactly when another starts is not a conflict.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var addrJSON []byte

	if err := row.Scan(
		&b.ID, &b.VenueID, &b.CustomerID, &b.StartTime, &b.EndTime,
		&b.Status, &b.TotalAmount, &b.PaymentStatus, &b.StripePaymentIntentID, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
		&b.VenueName, &addrJSON,
		&b.CustomerFirstName, &b.CustomerLastName, &b.CustomerEmail,
	); err != nil {
		return nil, err
	}

	if err := unmarshalAddress(&b, addrJSON); err != nil {
		return nil, err
	}
	return &b, nil
}

func unmarshalAddress(b *Booking, addrJSON []byte) error {
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &b.VenueAddress); err != nil {
			return fmt.Errorf("unmarshal venue address failed: %w", err)
		}
	}
	return nil
}
