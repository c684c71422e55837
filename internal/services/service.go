package services

import (
	"context"

	"github.com/homebuddy/apiserver/types"
)

// ServiceRepository defines persistence operations for the catalog.
type ServiceRepository interface {
	Get(ctx context.Context, id int) (types.Service, error)
	List(ctx context.Context) ([]types.Service, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, service types.Service) (types.Service, error)
	Update(ctx context.Context, service types.Service) (types.Service, error)
	Delete(ctx context.Context, id int) error
}

// CatalogService encapsulates service-catalog use-cases.
type CatalogService struct {
	repo ServiceRepository
}

func NewCatalogService(repo ServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Get(ctx context.Context, id int) (types.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]types.Service, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) Create(ctx context.Context, service types.Service) (types.Service, error) {
	return s.repo.Create(ctx, service)
}

func (s *CatalogService) Update(ctx context.Context, service types.Service) (types.Service, error) {
	return s.repo.Update(ctx, service)
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
