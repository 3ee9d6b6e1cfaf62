package models

import (
	"github.com/ak/backend/internal/domain/catalog"
)

// ItemGroupModel is the persistence model for the ItemGroup domain entity.
// The items of a group are loaded separately through ItemModel.ItemGroupID.
type ItemGroupModel struct {
	TenantModel
	Code        string `gorm:"type:varchar(10)"`
	Name        string `gorm:"type:varchar(50);not null"`
	Description string `gorm:"type:varchar(200)"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemGroupModel) TableName() string {
	return "item_group"
}

// ToDomain converts the persistence model to a domain ItemGroup entity.
func (m *ItemGroupModel) ToDomain() *catalog.ItemGroup {
	g := &catalog.ItemGroup{
		TenantEntity: m.TenantModel.ToDomain(),
		Code:         m.Code,
		Name:         m.Name,
		Description:  m.Description,
		IsActive:     m.IsActive,
	}
	g.SetItems(nil)
	return g
}

// FromDomain populates the persistence model from a domain ItemGroup entity.
func (m *ItemGroupModel) FromDomain(g *catalog.ItemGroup) {
	m.FromDomainTenantEntity(g.TenantEntity)
	m.Code = g.Code
	m.Name = g.Name
	m.Description = g.Description
	m.IsActive = g.IsActive
}

// ItemGroupModelFromDomain creates a persistence model from a domain ItemGroup entity.
func ItemGroupModelFromDomain(g *catalog.ItemGroup) *ItemGroupModel {
	m := &ItemGroupModel{}
	m.FromDomain(g)
	return m
}

// ItemModel is the persistence model for the Item domain entity.
type ItemModel struct {
	TenantModel
	Code        string `gorm:"type:varchar(20)"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:varchar(200)"`
	IsActive    bool   `gorm:"not null"`
	ItemGroupID *int64 `gorm:"index"`
	UnitID      *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "item"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		TenantEntity: m.TenantModel.ToDomain(),
		Code:         m.Code,
		Name:         m.Name,
		Description:  m.Description,
		IsActive:     m.IsActive,
		ItemGroupID:  m.ItemGroupID,
		UnitID:       m.UnitID,
	}
}

// FromDomain populates the persistence model from a domain Item entity.
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.FromDomainTenantEntity(i.TenantEntity)
	m.Code = i.Code
	m.Name = i.Name
	m.Description = i.Description
	m.IsActive = i.IsActive
	m.ItemGroupID = i.ItemGroupID
	m.UnitID = i.UnitID
}

// ItemModelFromDomain creates a persistence model from a domain Item entity.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}

// UnitModel is the persistence model for the Unit domain entity.
type UnitModel struct {
	TenantModel
	Name        string `gorm:"type:varchar(10);not null"`
	Description string `gorm:"type:varchar(200)"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "unit"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *catalog.Unit {
	return &catalog.Unit{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		Description:  m.Description,
		IsActive:     m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *catalog.Unit) {
	m.FromDomainTenantEntity(u.TenantEntity)
	m.Name = u.Name
	m.Description = u.Description
	m.IsActive = u.IsActive
}

// UnitModelFromDomain creates a persistence model from a domain Unit entity.
func UnitModelFromDomain(u *catalog.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}
