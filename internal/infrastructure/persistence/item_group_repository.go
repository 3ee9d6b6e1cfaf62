package persistence

import (
	"context"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"github.com/ak/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormItemGroupRepository implements ItemGroupRepository using GORM
type GormItemGroupRepository struct {
	db *gorm.DB
}

// NewGormItemGroupRepository creates a new GormItemGroupRepository
func NewGormItemGroupRepository(db *gorm.DB) *GormItemGroupRepository {
	return &GormItemGroupRepository{db: db}
}

// FindAll returns one page of item groups matching the criteria
func (r *GormItemGroupRepository) FindAll(ctx context.Context, criteria catalog.ItemGroupCriteria, pageable shared.Pageable) ([]catalog.ItemGroup, int64, error) {
	rows, total, err := findPage[models.ItemGroupModel](func() *gorm.DB {
		return r.applyCriteria(ctx, criteria)
	}, pageable, ItemGroupSortColumns)
	if err != nil {
		return nil, 0, err
	}

	groups := make([]catalog.ItemGroup, len(rows))
	for i, model := range rows {
		groups[i] = *model.ToDomain()
	}
	return groups, total, nil
}

// Count counts item groups matching the criteria
func (r *GormItemGroupRepository) Count(ctx context.Context, criteria catalog.ItemGroupCriteria) (int64, error) {
	var count int64
	if err := r.applyCriteria(ctx, criteria).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID finds an item group of the given company without its items
func (r *GormItemGroupRepository) FindByID(ctx context.Context, companyID, id int64) (*catalog.ItemGroup, error) {
	model, err := findScoped[models.ItemGroupModel](ctx, r.db, companyID, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDWithItems finds an item group and wires its items in both directions
func (r *GormItemGroupRepository) FindByIDWithItems(ctx context.Context, companyID, id int64) (*catalog.ItemGroup, error) {
	group, err := r.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	var itemModels []models.ItemModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(companyID)).
		Where("item_group_id = ?", id).
		Order("id").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*catalog.Item, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	group.SetItems(items)
	return group, nil
}

// Save creates or updates an item group. Items are owned by the item side
// and are not written here.
func (r *GormItemGroupRepository) Save(ctx context.Context, group *catalog.ItemGroup) error {
	model := models.ItemGroupModelFromDomain(group)
	if group.IsNew() {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return translateError(err)
		}
		group.ID = model.ID
		return nil
	}
	return updateScoped(ctx, r.db, group.CompanyID, group.ID, model)
}

// Delete detaches the group's items and deletes the group in one transaction
func (r *GormItemGroupRepository) Delete(ctx context.Context, companyID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearGroup(ctx, tx, companyID, id); err != nil {
			return err
		}
		return deleteScoped[models.ItemGroupModel](ctx, tx, companyID, id)
	})
}

func (r *GormItemGroupRepository) applyCriteria(ctx context.Context, c catalog.ItemGroupCriteria) *gorm.DB {
	q := newFilterQuery(r.db.WithContext(ctx).Model(&models.ItemGroupModel{})).
		Long("id", c.ID).
		Long("company_id", c.CompanyID).
		String("code", c.Code).
		String("name", c.Name).
		String("description", c.Description).
		Boolean("is_active", c.IsActive)
	if !c.ItemID.IsEmpty() {
		items := newFilterQuery(r.db.Session(&gorm.Session{NewDB: true}).Model(&models.ItemModel{})).
			Long("id", c.ItemID).
			DB().
			Select("item_group_id")
		q = q.Related("id", items)
	}
	return q.DB()
}

// Ensure GormItemGroupRepository implements ItemGroupRepository
var _ catalog.ItemGroupRepository = (*GormItemGroupRepository)(nil)
