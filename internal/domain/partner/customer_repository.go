package partner

import (
	"context"

	"github.com/ak/backend/internal/domain/shared"
)

// CustomerCriteria filters customers. Nil filters match everything.
type CustomerCriteria struct {
	ID          *shared.LongFilter
	CompanyID   *shared.LongFilter
	Code        *shared.StringFilter
	Name        *shared.StringFilter
	CompanyName *shared.StringFilter
	ContactName *shared.StringFilter
	Phone       *shared.StringFilter
	Email       *shared.StringFilter
	TaxID       *shared.StringFilter
	CreditLimit *shared.DecimalFilter
	IsActive    *shared.BooleanFilter
}

// ForCompany returns a copy whose company filter is forced to companyID,
// replacing whatever the client asked for.
func (c CustomerCriteria) ForCompany(companyID int64) CustomerCriteria {
	c.CompanyID = shared.LongEquals(companyID)
	return c
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindAll returns one page of customers matching the criteria and the total match count
	FindAll(ctx context.Context, criteria CustomerCriteria, pageable shared.Pageable) ([]Customer, int64, error)

	// Count counts customers matching the criteria
	Count(ctx context.Context, criteria CustomerCriteria) (int64, error)

	// FindByID finds a customer of the given company
	FindByID(ctx context.Context, companyID, id int64) (*Customer, error)

	// Save inserts a new customer or updates an existing one, writing back the generated id
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer of the given company
	Delete(ctx context.Context, companyID, id int64) error
}
