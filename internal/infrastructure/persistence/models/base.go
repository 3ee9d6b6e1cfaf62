package models

import (
	"github.com/ak/backend/internal/domain/shared"
)

// TenantModel provides the identity and owning company of company scoped tables.
type TenantModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CompanyID int64 `gorm:"not null;index"`
}

// ToDomain converts TenantModel to the domain TenantEntity
func (m *TenantModel) ToDomain() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: shared.BaseEntity{ID: m.ID},
		CompanyID:  m.CompanyID,
	}
}

// FromDomainTenantEntity populates TenantModel from the domain TenantEntity
func (m *TenantModel) FromDomainTenantEntity(e shared.TenantEntity) {
	m.ID = e.ID
	m.CompanyID = e.CompanyID
}
