package db

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/homebuddy/apiserver/internal/auth"
	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// Default admin account seeded alongside the catalog. The password is
// hashed before storage; the unified login's hardcoded admin check is a
// separate legacy path.
const (
	seedAdminName     = "System Administrator"
	seedAdminEmail    = "admin@homebuddy.com"
	seedAdminPassword = "admin123"
	seedAdminPhone    = "0000000000"
	seedAdminAddress  = "Headquarters"
)

var seedServices = []types.Service{
	{Name: "House Cleaning", Price: 500, Description: "Full professional house cleaning services"},
	{Name: "Plumbing", Price: 300, Description: "Expert plumbing repairs and installations"},
	{Name: "Electrical Work", Price: 400, Description: "Safe electrical wiring and repair services"},
	{Name: "Home Cooking", Price: 600, Description: "Professional home-style meal preparation"},
	{Name: "Laundry & Washing", Price: 200, Description: "High-quality laundry and garment care"},
}

// Seed populates the service catalog and the default admin account when
// they are absent. It is idempotent via count checks, which is safe for
// a single starting instance only: two instances seeding concurrently
// can both pass the count check and insert twice.
func Seed(ctx context.Context, dbConn *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	serviceRepo := store.NewServiceRepository(dbConn)
	userRepo := store.NewUserRepository(dbConn)

	count, err := serviceRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for _, service := range seedServices {
			if _, err := serviceRepo.Create(ctx, service); err != nil {
				return err
			}
		}
		logger.Info("seeded service catalog", "services", len(seedServices))
	}

	admins, err := userRepo.CountByRole(ctx, types.RoleAdmin)
	if err != nil {
		return err
	}
	if admins == 0 {
		hashed, err := auth.HashPassword(seedAdminPassword)
		if err != nil {
			return err
		}
		if _, err := userRepo.Create(ctx, types.User{
			Name:         seedAdminName,
			Email:        seedAdminEmail,
			Phone:        seedAdminPhone,
			Address:      seedAdminAddress,
			Role:         types.RoleAdmin,
			PasswordHash: hashed,
		}); err != nil {
			return err
		}
		logger.Info("seeded default admin account")
	}

	return nil
}
