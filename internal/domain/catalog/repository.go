package catalog

import (
	"context"

	"github.com/ak/backend/internal/domain/shared"
)

// ItemGroupRepository persists item groups.
// Lookups by id are scoped to a company; rows of other companies are
// reported as shared.ErrNotFound.
type ItemGroupRepository interface {
	FindAll(ctx context.Context, criteria ItemGroupCriteria, pageable shared.Pageable) ([]ItemGroup, int64, error)
	Count(ctx context.Context, criteria ItemGroupCriteria) (int64, error)
	FindByID(ctx context.Context, companyID, id int64) (*ItemGroup, error)

	// FindByIDWithItems loads the group together with its items
	FindByIDWithItems(ctx context.Context, companyID, id int64) (*ItemGroup, error)

	// Save inserts the group when it is new and updates it otherwise.
	// The generated id is written back.
	Save(ctx context.Context, group *ItemGroup) error
	Delete(ctx context.Context, companyID, id int64) error
}

// ItemRepository persists items
type ItemRepository interface {
	FindAll(ctx context.Context, criteria ItemCriteria, pageable shared.Pageable) ([]Item, int64, error)
	Count(ctx context.Context, criteria ItemCriteria) (int64, error)
	FindByID(ctx context.Context, companyID, id int64) (*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, companyID, id int64) error
}

// UnitRepository persists units
type UnitRepository interface {
	FindAll(ctx context.Context, criteria UnitCriteria, pageable shared.Pageable) ([]Unit, int64, error)
	Count(ctx context.Context, criteria UnitCriteria) (int64, error)
	FindByID(ctx context.Context, companyID, id int64) (*Unit, error)
	Save(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, companyID, id int64) error
}
