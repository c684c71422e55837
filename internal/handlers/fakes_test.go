package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// fakeUserRepo is an in-memory services.UserRepository.
type fakeUserRepo struct {
	users  map[int]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]types.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

// GetByEmail mirrors the SQL LOWER(email) lookup.
func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if strings.ToLower(user.Email) == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (types.User, error) {
	for _, user := range f.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(f.users))
	for id := 1; id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role string) (int, error) {
	count := 0
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	user.ID = f.nextID
	f.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

// fakeProviderRepo is an in-memory services.ProviderRepository.
type fakeProviderRepo struct {
	providers map[int]types.Provider
	nextID    int
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: map[int]types.Provider{}, nextID: 1}
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id int) (types.Provider, error) {
	provider, ok := f.providers[id]
	if !ok {
		return types.Provider{}, store.ErrNotFound
	}
	return provider, nil
}

// GetByEmail is exact-case, mirroring the providers table lookup.
func (f *fakeProviderRepo) GetByEmail(_ context.Context, email string) (types.Provider, error) {
	for _, provider := range f.providers {
		if provider.Email == email {
			return provider, nil
		}
	}
	return types.Provider{}, store.ErrNotFound
}

func (f *fakeProviderRepo) GetByUserID(_ context.Context, userID int) (types.Provider, error) {
	for _, provider := range f.providers {
		if provider.UserID != nil && *provider.UserID == userID {
			return provider, nil
		}
	}
	return types.Provider{}, store.ErrNotFound
}

func (f *fakeProviderRepo) List(_ context.Context, serviceID int) ([]types.Provider, error) {
	providers := make([]types.Provider, 0, len(f.providers))
	for id := 1; id < f.nextID; id++ {
		provider, ok := f.providers[id]
		if !ok {
			continue
		}
		if serviceID > 0 && provider.ServiceID != serviceID {
			continue
		}
		providers = append(providers, provider)
	}
	return providers, nil
}

func (f *fakeProviderRepo) Create(_ context.Context, provider types.Provider) (types.Provider, error) {
	for _, existing := range f.providers {
		if existing.Email == provider.Email {
			return types.Provider{}, store.ErrDuplicateEmail
		}
	}
	provider.ID = f.nextID
	f.nextID++
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now
	f.providers[provider.ID] = provider
	return provider, nil
}
