package venue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id, tenantID string) (*Venue, error)

	// Get looks a venue up without tenant scoping. The booking workflow uses
	// it because customers book venues across tenant boundaries.
	Get(ctx context.Context, id string) (*Venue, error)
	ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Venue, int, error)
	Update(ctx context.Context, id, tenantID string, fields UpdateFields) (*Venue, error)
	Delete(ctx context.Context, id, tenantID string) error
	Search(ctx context.Context, filter SearchFilter) ([]*Venue, int, error)
}

// UpdateFields holds the optional venue fields an update may carry.
// Only non-nil fields are mapped into SET clauses.
type UpdateFields struct {
	Name         *string
	Description  *string
	Address      *Address
	Capacity     *int
	PricePerHour *float64
	Amenities    *[]string
	Images       *[]string
	IsActive     *bool
}

// Empty reports whether no field is set.
func (f UpdateFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.Address == nil &&
		f.Capacity == nil && f.PricePerHour == nil && f.Amenities == nil &&
		f.Images == nil && f.IsActive == nil
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const venueColumns = "id, tenant_id, name, description, address, capacity, price_per_hour, amenities, images, is_active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, v *Venue) error {
	addrJSON, err := json.Marshal(v.Address)
	if err != nil {
		return fmt.Errorf("marshal venue address failed: %w", err)
	}
	amenitiesJSON, err := json.Marshal(v.Amenities)
	if err != nil {
		return fmt.Errorf("marshal venue amenities failed: %w", err)
	}
	imagesJSON, err := json.Marshal(v.Images)
	if err != nil {
		return fmt.Errorf("marshal venue images failed: %w", err)
	}

	const query = `
		INSERT INTO public.venues (tenant_id, name, description, address, capacity, price_per_hour, amenities, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, updated_at
	`
	if err := r.pool.QueryRow(
		ctx, query,
		v.TenantID, v.Name, v.Description, addrJSON, v.Capacity, v.PricePerHour, amenitiesJSON, imagesJSON,
	).Scan(&v.ID, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return fmt.Errorf("create venue failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id, tenantID string) (*Venue, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.venues
		WHERE id = $1 AND tenant_id = $2
	`, venueColumns)

	return scanVenue(r.pool.QueryRow(ctx, query, id, tenantID))
}

func (r *pgxRepository) Get(ctx context.Context, id string) (*Venue, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.venues
		WHERE id = $1
	`, venueColumns)

	return scanVenue(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Venue, int, error) {
	// Total is counted separately so a page past the last row still reports
	// the true count.
	const countQuery = `SELECT count(*) FROM public.venues WHERE tenant_id = $1`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count venues failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM public.venues
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, venueColumns)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues failed: %w", err)
	}
	defer rows.Close()

	venues, err := collectVenues(rows)
	if err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, id, tenantID string, fields UpdateFields) (*Venue, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Update("public.venues")

	if fields.Name != nil {
		query = query.Set("name", *fields.Name)
	}
	if fields.Description != nil {
		query = query.Set("description", *fields.Description)
	}
	if fields.Address != nil {
		addrJSON, err := json.Marshal(fields.Address)
		if err != nil {
			return nil, fmt.Errorf("marshal venue address failed: %w", err)
		}
		query = query.Set("address", addrJSON)
	}
	if fields.Capacity != nil {
		query = query.Set("capacity", *fields.Capacity)
	}
	if fields.PricePerHour != nil {
		query = query.Set("price_per_hour", *fields.PricePerHour)
	}
	if fields.Amenities != nil {
		amenitiesJSON, err := json.Marshal(*fields.Amenities)
		if err != nil {
			return nil, fmt.Errorf("marshal venue amenities failed: %w", err)
		}
		query = query.Set("amenities", amenitiesJSON)
	}
	if fields.Images != nil {
		imagesJSON, err := json.Marshal(*fields.Images)
		if err != nil {
			return nil, fmt.Errorf("marshal venue images failed: %w", err)
		}
		query = query.Set("images", imagesJSON)
	}
	if fields.IsActive != nil {
		query = query.Set("is_active", *fields.IsActive)
	}

	sql, args, err := query.
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		Suffix("RETURNING " + venueColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update venue query failed: %w", err)
	}

	return scanVenue(r.pool.QueryRow(ctx, sql, args...))
}

func (r *pgxRepository) Delete(ctx context.Context, id, tenantID string) error {
	const query = `DELETE FROM public.venues WHERE id = $1 AND tenant_id = $2`
	ct, err := r.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete venue failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Search(ctx context.Context, filter SearchFilter) ([]*Venue, int, error) {
	conds := []squirrel.Sqlizer{squirrel.Eq{"is_active": true}}

	if filter.City != "" {
		conds = append(conds, squirrel.ILike{"address->>'city'": "%" + filter.City + "%"})
	}
	if filter.CapacityMin > 0 {
		conds = append(conds, squirrel.GtOrEq{"capacity": filter.CapacityMin})
	}
	if filter.CapacityMax > 0 {
		conds = append(conds, squirrel.LtOrEq{"capacity": filter.CapacityMax})
	}
	if filter.PriceMax > 0 {
		conds = append(conds, squirrel.LtOrEq{"price_per_hour": filter.PriceMax})
	}
	if len(filter.Amenities) > 0 {
		amenitiesJSON, err := json.Marshal(filter.Amenities)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal amenities filter failed: %w", err)
		}
		conds = append(conds, squirrel.Expr("amenities @> ?::jsonb", amenitiesJSON))
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// The count query shares the predicate so a page past the last row still
	// reports the true total.
	countQuery := psql.Select("count(*)").From("public.venues")
	pageQuery := psql.Select(venueColumns).From("public.venues")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		pageQuery = pageQuery.Where(cond)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count venues query failed: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count venues failed: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	offset := (filter.Page - 1) * filter.Limit

	sql, args, err := pageQuery.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search venues query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search venues failed: %w", err)
	}
	defer rows.Close()

	venues, err := collectVenues(rows)
	if err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func scanVenue(row pgx.Row) (*Venue, error) {
	var v Venue
	var addrJSON, amenitiesJSON, imagesJSON []byte

	if err := row.Scan(
		&v.ID, &v.TenantID, &v.Name, &v.Description, &addrJSON,
		&v.Capacity, &v.PricePerHour, &amenitiesJSON, &imagesJSON,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue failed: %w", err)
	}

	if err := unmarshalVenueJSON(&v, addrJSON, amenitiesJSON, imagesJSON); err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVenues(rows pgx.Rows) ([]*Venue, error) {
	var venues []*Venue

	for rows.Next() {
		var v Venue
		var addrJSON, amenitiesJSON, imagesJSON []byte

		if err := rows.Scan(
			&v.ID, &v.TenantID, &v.Name, &v.Description, &addrJSON,
			&v.Capacity, &v.PricePerHour, &amenitiesJSON, &imagesJSON,
			&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan venue failed: %w", err)
		}

		if err := unmarshalVenueJSON(&v, addrJSON, amenitiesJSON, imagesJSON); err != nil {
			return nil, err
		}
		venues = append(venues, &v)
	}

	return venues, nil
}

func unmarshalVenueJSON(v *Venue, addrJSON, amenitiesJSON, imagesJSON []byte) error {
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &v.Address); err != nil {
			return fmt.Errorf("unmarshal venue address failed: %w", err)
		}
	}
	if len(amenitiesJSON) > 0 {
		if err := json.Unmarshal(amenitiesJSON, &v.Amenities); err != nil {
			return fmt.Errorf("unmarshal venue amenities failed: %w", err)
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &v.Images); err != nil {
			return fmt.Errorf("unmarshal venue images failed: %w", err)
		}
	}
	return nil
}
