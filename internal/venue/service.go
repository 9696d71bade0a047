package venue

import (
	"context"
	"strings"
)

type CreateRequest struct {
	TenantID     string
	Name         string
	Description  *string
	Address      Address
	Capacity     int
	PricePerHour float64
	Amenities    []string
	Images       []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Venue, error)
	GetByID(ctx context.Context, id, tenantID string) (*Venue, error)
	Get(ctx context.Context, id string) (*Venue, error)
	ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Venue, int, error)
	Update(ctx context.Context, id, tenantID string, fields UpdateFields) (*Venue, error)
	Delete(ctx context.Context, id, tenantID string) error
	Search(ctx context.Context, filter SearchFilter) ([]*Venue, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Venue, error) {
	if req.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.PricePerHour < 0 {
		return nil, ErrNegativePrice
	}

	if req.Amenities == nil {
		req.Amenities = []string{}
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	v := &Venue{
		TenantID:     req.TenantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Address:      req.Address,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Amenities:    req.Amenities,
		Images:       req.Images,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id, tenantID string) (*Venue, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

func (s *service) Get(ctx context.Context, id string) (*Venue, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) ListByTenant(ctx context.Context, tenantID string, page, limit int) ([]*Venue, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, page, limit)
}

func (s *service) Update(ctx context.Context, id, tenantID string, fields UpdateFields) (*Venue, error) {
	if fields.Empty() {
		return nil, ErrNoFields
	}
	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		return nil, ErrNameRequired
	}
	if fields.Capacity != nil && *fields.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if fields.PricePerHour != nil && *fields.PricePerHour < 0 {
		return nil, ErrNegativePrice
	}

	return s.repo.Update(ctx, id, tenantID, fields)
}

func (s *service) Delete(ctx context.Context, id, tenantID string) error {
	return s.repo.Delete(ctx, id, tenantID)
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]*Venue, int, error) {
	return s.repo.Search(ctx, filter)
}
