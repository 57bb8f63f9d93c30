package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// Duplicate unique key (username/email/slug).
var ErrConflict = errors.New("conflict")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	// Login lookup: matches either column.
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (model.User, error)
	// Registration / profile-update duplicate check. excludeID <= 0 means no exclusion.
	ExistsWithUsernameOrEmail(ctx context.Context, username string, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, username string, email string, rustUsername string) error
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID int64) error
	// Post-order accrual: total_spent += amount, loyalty_points += points.
	AddSpendAndPoints(ctx context.Context, userID int64, amount float64, points int64) error
}
