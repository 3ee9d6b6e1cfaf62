package identity

import (
	"context"

	"github.com/ak/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByLogin finds a user by login across all companies
	FindByLogin(ctx context.Context, login string) (*User, error)

	// FindByEmail finds a user by email across all companies
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID finds a user of the given company
	FindByID(ctx context.Context, companyID, id int64) (*User, error)

	// FindAllByCompany returns one page of the company's users
	FindAllByCompany(ctx context.Context, companyID int64, pageable shared.Pageable) ([]User, int64, error)

	// Save inserts or updates the user together with its authorities
	Save(ctx context.Context, user *User) error

	// DeleteByLogin deletes a user of the given company
	DeleteByLogin(ctx context.Context, companyID int64, login string) error

	// FindAuthorities lists the names of all stored authorities
	FindAuthorities(ctx context.Context) ([]string, error)
}
