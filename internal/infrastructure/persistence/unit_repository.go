package persistence

import (
	"context"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindAll returns one page of units matching the criteria
func (r *GormUnitRepository) FindAll(ctx context.Context, criteria catalog.UnitCriteria, pageable shared.Pageable) ([]catalog.Unit, int64, error) {
	rows, total, err := findPage[models.UnitModel](func() *gorm.DB {
		return r.applyCriteria(ctx, criteria)
	}, pageable, UnitSortColumns)
	if err != nil {
		return nil, 0, err
	}

	units := make([]catalog.Unit, len(rows))
	for i, model := range rows {
		units[i] = *model.ToDomain()
	}
	return units, total, nil
}

// Count counts units matching the criteria
func (r *GormUnitRepository) Count(ctx context.Context, criteria catalog.UnitCriteria) (int64, error) {
	var count int64
	if err := r.applyCriteria(ctx, criteria).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID finds a unit of the given company
func (r *GormUnitRepository) FindByID(ctx context.Context, companyID, id int64) (*catalog.Unit, error) {
	model, err := findScoped[models.UnitModel](ctx, r.db, companyID, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	model := models.UnitModelFromDomain(unit)
	if unit.IsNew() {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return translateError(err)
		}
		unit.ID = model.ID
		return nil
	}
	return updateScoped(ctx, r.db, unit.CompanyID, unit.ID, model)
}

// Delete deletes a unit of the given company
func (r *GormUnitRepository) Delete(ctx context.Context, companyID, id int64) error {
	return deleteScoped[models.UnitModel](ctx, r.db, companyID, id)
}

func (r *GormUnitRepository) applyCriteria(ctx context.Context, c catalog.UnitCriteria) *gorm.DB {
	return newFilterQuery(r.db.WithContext(ctx).Model(&models.UnitModel{})).
		Long("id", c.ID).
		Long("company_id", c.CompanyID).
		String("name", c.Name).
		String("description", c.Description).
		Boolean("is_active", c.IsActive).
		DB()
}

// Ensure GormUnitRepository implements UnitRepository
var _ catalog.UnitRepository = (*GormUnitRepository)(nil)
