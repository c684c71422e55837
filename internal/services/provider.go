package services

import (
	"context"

	"github.com/homebuddy/apiserver/types"
)

// ProviderRepository defines persistence operations for providers.
type ProviderRepository interface {
	GetByID(ctx context.Context, id int) (types.Provider, error)
	GetByEmail(ctx context.Context, email string) (types.Provider, error)
	GetByUserID(ctx context.Context, userID int) (types.Provider, error)
	List(ctx context.Context, serviceID int) ([]types.Provider, error)
	Create(ctx context.Context, provider types.Provider) (types.Provider, error)
}

// ProviderService encapsulates provider use-cases.
type ProviderService struct {
	repo ProviderRepository
}

func NewProviderService(repo ProviderRepository) *ProviderService {
	return &ProviderService{repo: repo}
}

func (s *ProviderService) GetByID(ctx context.Context, id int) (types.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail matches the stored email exactly, including case.
func (s *ProviderService) GetByEmail(ctx context.Context, email string) (types.Provider, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *ProviderService) GetByUserID(ctx context.Context, userID int) (types.Provider, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *ProviderService) List(ctx context.Context, serviceID int) ([]types.Provider, error) {
	return s.repo.List(ctx, serviceID)
}

func (s *ProviderService) Create(ctx context.Context, provider types.Provider) (types.Provider, error) {
	return s.repo.Create(ctx, provider)
}
