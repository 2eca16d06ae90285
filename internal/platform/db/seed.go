package db

import (
	"context"
	"errors"

	"staffbook/internal/domain/auth"
	"staffbook/internal/domain/employee"
	"staffbook/internal/platform/config"
)

// Seed inserts the single administrator record if no admin exists yet. The
// seeded record is exempt from directory listing, search, export and
// deletion throughout the service.
func Seed(ctx context.Context, store *employee.Store, cfg config.Config) error {
	_, err := store.FindAdmin(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, employee.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = store.Insert(ctx, employee.Employee{
		EmployeeID:       "admin",
		Name:             "admin",
		Phone:            "0000000000",
		Password:         hash,
		Role:             employee.RoleAdmin,
		DetailsCompleted: true,
	})
	return err
}
