package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, t *Tenant) error {
	const query = `
		INSERT INTO public.tenants (name)
		VALUES ($1)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, t.Name).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("create tenant failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	const query = `
		SELECT id, name, created_at
		FROM public.tenants
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var t Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tenant failed: %w", err)
	}
	return &t, nil
}
