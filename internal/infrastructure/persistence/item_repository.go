package persistence

import (
	"context"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"github.com/ak/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindAll returns one page of items matching the criteria
func (r *GormItemRepository) FindAll(ctx context.Context, criteria catalog.ItemCriteria, pageable shared.Pageable) ([]catalog.Item, int64, error) {
	rows, total, err := findPage[models.ItemModel](func() *gorm.DB {
		return r.applyCriteria(ctx, criteria)
	}, pageable, ItemSortColumns)
	if err != nil {
		return nil, 0, err
	}

	items := make([]catalog.Item, len(rows))
	for i, model := range rows {
		items[i] = *model.ToDomain()
	}
	return items, total, nil
}

// Count counts items matching the criteria
func (r *GormItemRepository) Count(ctx context.Context, criteria catalog.ItemCriteria) (int64, error) {
	var count int64
	if err := r.applyCriteria(ctx, criteria).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID finds an item of the given company
func (r *GormItemRepository) FindByID(ctx context.Context, companyID, id int64) (*catalog.Item, error) {
	model, err := findScoped[models.ItemModel](ctx, r.db, companyID, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an item, including its group reference
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	model := models.ItemModelFromDomain(item)
	if item.IsNew() {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return translateError(err)
		}
		item.ID = model.ID
		return nil
	}
	return updateScoped(ctx, r.db, item.CompanyID, item.ID, model)
}

// Delete deletes an item of the given company
func (r *GormItemRepository) Delete(ctx context.Context, companyID, id int64) error {
	return deleteScoped[models.ItemModel](ctx, r.db, companyID, id)
}

// clearGroup detaches every item of the group
func clearGroup(ctx context.Context, db *gorm.DB, companyID, groupID int64) error {
	return db.WithContext(ctx).
		Model(&models.ItemModel{}).
		Scopes(tenant.CompanyScope(companyID)).
		Where("item_group_id = ?", groupID).
		Update("item_group_id", nil).Error
}

func (r *GormItemRepository) applyCriteria(ctx context.Context, c catalog.ItemCriteria) *gorm.DB {
	return newFilterQuery(r.db.WithContext(ctx).Model(&models.ItemModel{})).
		Long("id", c.ID).
		Long("company_id", c.CompanyID).
		String("code", c.Code).
		String("name", c.Name).
		String("description", c.Description).
		Boolean("is_active", c.IsActive).
		Long("item_group_id", c.ItemGroupID).
		Long("unit_id", c.UnitID).
		DB()
}

// Ensure GormItemRepository implements ItemRepository
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
