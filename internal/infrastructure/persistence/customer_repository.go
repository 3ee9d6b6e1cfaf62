package persistence

import (
	"context"

	"github.com/ak/backend/internal/domain/partner"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindAll returns one page of customers matching the criteria
func (r *GormCustomerRepository) FindAll(ctx context.Context, criteria partner.CustomerCriteria, pageable shared.Pageable) ([]partner.Customer, int64, error) {
	rows, total, err := findPage[models.CustomerModel](func() *gorm.DB {
		return r.applyCriteria(ctx, criteria)
	}, pageable, CustomerSortColumns)
	if err != nil {
		return nil, 0, err
	}

	customers := make([]partner.Customer, len(rows))
	for i, model := range rows {
		customers[i] = *model.ToDomain()
	}
	return customers, total, nil
}

// Count counts customers matching the criteria
func (r *GormCustomerRepository) Count(ctx context.Context, criteria partner.CustomerCriteria) (int64, error) {
	var count int64
	if err := r.applyCriteria(ctx, criteria).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID finds a customer of the given company
func (r *GormCustomerRepository) FindByID(ctx context.Context, companyID, id int64) (*partner.Customer, error) {
	model, err := findScoped[models.CustomerModel](ctx, r.db, companyID, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a customer. A new customer gets its generated id
// and timestamps written back.
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if customer.IsNew() {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return translateError(err)
		}
		customer.ID = model.ID
		customer.CreatedAt = model.CreatedAt
		customer.UpdatedAt = model.UpdatedAt
		return nil
	}
	if err := updateScoped(ctx, r.db, customer.CompanyID, customer.ID, model); err != nil {
		return err
	}
	customer.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a customer of the given company
func (r *GormCustomerRepository) Delete(ctx context.Context, companyID, id int64) error {
	return deleteScoped[models.CustomerModel](ctx, r.db, companyID, id)
}

func (r *GormCustomerRepository) applyCriteria(ctx context.Context, c partner.CustomerCriteria) *gorm.DB {
	return newFilterQuery(r.db.WithContext(ctx).Model(&models.CustomerModel{})).
		Long("id", c.ID).
		Long("company_id", c.CompanyID).
		String("code", c.Code).
		String("name", c.Name).
		String("company_name", c.CompanyName).
		String("contact_name", c.ContactName).
		String("phone", c.Phone).
		String("email", c.Email).
		String("tax_id", c.TaxID).
		Decimal("credit_limit", c.CreditLimit).
		Boolean("is_active", c.IsActive).
		DB()
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
