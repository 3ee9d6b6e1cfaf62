package persistence

import (
	"context"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// findScoped loads one row of a company by id
func findScoped[M any](ctx context.Context, db *gorm.DB, companyID, id int64) (*M, error) {
	var model M
	err := db.WithContext(ctx).
		Scopes(tenant.CompanyScope(companyID)).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &model, nil
}

// updateScoped overwrites every column of a company's row except the
// identity, the owner and the creation time. A row of another company is
// reported as shared.ErrNotFound.
func updateScoped[M any](ctx context.Context, db *gorm.DB, companyID, id int64, model *M) error {
	result := db.WithContext(ctx).
		Model(new(M)).
		Scopes(tenant.CompanyScope(companyID)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "company_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// deleteScoped deletes one row of a company by id
func deleteScoped[M any](ctx context.Context, db *gorm.DB, companyID, id int64) error {
	result := db.WithContext(ctx).
		Scopes(tenant.CompanyScope(companyID)).
		Where("id = ?", id).
		Delete(new(M))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findPage runs the filtered query twice: once for the total and once for
// the requested page. An empty total or a page past the last row skips the
// second query.
func findPage[M any](filtered func() *gorm.DB, pageable shared.Pageable, columns SortColumns) ([]M, int64, error) {
	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []M{}, 0, nil
	}
	if pageable.Size > 0 && int64(pageable.Offset()) >= total {
		return []M{}, total, nil
	}
	var rows []M
	if err := paginate(filtered(), pageable, columns).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
