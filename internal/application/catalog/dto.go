package catalog

import (
	"github.com/ak/backend/internal/domain/catalog"
)

// Entity names used in alert headers and error bodies
const (
	ItemGroupEntityName = "itemGroup"
	ItemEntityName      = "item"
	UnitEntityName      = "unit"
)

// =============================================================================
// Item group DTOs
// =============================================================================

// ItemGroupRequest is the body of POST and PUT /api/item-groups
type ItemGroupRequest struct {
	ID          *int64 `json:"id"`
	CompanyID   *int64 `json:"companyId"`
	Code        string `json:"code" binding:"max=10"`
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=200"`
	IsActive    *bool  `json:"isActive"`
}

func (r ItemGroupRequest) options() []catalog.ItemGroupOption {
	opts := []catalog.ItemGroupOption{
		catalog.WithItemGroupCode(r.Code),
		catalog.WithItemGroupDescription(r.Description),
	}
	if r.IsActive != nil {
		opts = append(opts, catalog.WithItemGroupActive(*r.IsActive))
	}
	return opts
}

// ItemGroupDTO represents an item group in API responses
type ItemGroupDTO struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// ToItemGroupDTO converts a domain item group
func ToItemGroupDTO(g *catalog.ItemGroup) ItemGroupDTO {
	return ItemGroupDTO{
		ID:          g.ID,
		CompanyID:   g.CompanyID,
		Code:        g.Code,
		Name:        g.Name,
		Description: g.Description,
		IsActive:    g.IsActive,
	}
}

// ToItemGroupDTOs converts a slice of item groups
func ToItemGroupDTOs(groups []catalog.ItemGroup) []ItemGroupDTO {
	out := make([]ItemGroupDTO, len(groups))
	for i := range groups {
		out[i] = ToItemGroupDTO(&groups[i])
	}
	return out
}

// =============================================================================
// Item DTOs
// =============================================================================

// ItemRequest is the body of POST and PUT /api/items
type ItemRequest struct {
	ID          *int64 `json:"id"`
	CompanyID   *int64 `json:"companyId"`
	Code        string `json:"code" binding:"max=20"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=200"`
	IsActive    *bool  `json:"isActive"`
	ItemGroupID *int64 `json:"itemGroupId"`
	UnitID      *int64 `json:"unitId"`
}

func (r ItemRequest) options() []catalog.ItemOption {
	opts := []catalog.ItemOption{
		catalog.WithItemCode(r.Code),
		catalog.WithItemDescription(r.Description),
		catalog.WithItemGroupRef(r.ItemGroupID),
		catalog.WithItemUnit(r.UnitID),
	}
	if r.IsActive != nil {
		opts = append(opts, catalog.WithItemActive(*r.IsActive))
	}
	return opts
}

// ItemDTO represents an item in API responses
type ItemDTO struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	ItemGroupID *int64 `json:"itemGroupId"`
	UnitID      *int64 `json:"unitId"`
}

// ToItemDTO converts a domain item
func ToItemDTO(i *catalog.Item) ItemDTO {
	return ItemDTO{
		ID:          i.ID,
		CompanyID:   i.CompanyID,
		Code:        i.Code,
		Name:        i.Name,
		Description: i.Description,
		IsActive:    i.IsActive,
		ItemGroupID: i.ItemGroupID,
		UnitID:      i.UnitID,
	}
}

// ToItemDTOs converts a slice of items
func ToItemDTOs(items []catalog.Item) []ItemDTO {
	out := make([]ItemDTO, len(items))
	for i := range items {
		out[i] = ToItemDTO(&items[i])
	}
	return out
}

// =============================================================================
// Unit DTOs
// =============================================================================

// UnitRequest is the body of POST and PUT /api/units
type UnitRequest struct {
	ID          *int64 `json:"id"`
	CompanyID   *int64 `json:"companyId"`
	Name        string `json:"name" binding:"required,max=10"`
	Description string `json:"description" binding:"max=200"`
	IsActive    *bool  `json:"isActive"`
}

func (r UnitRequest) options() []catalog.UnitOption {
	opts := []catalog.UnitOption{catalog.WithUnitDescription(r.Description)}
	if r.IsActive != nil {
		opts = append(opts, catalog.WithUnitActive(*r.IsActive))
	}
	return opts
}

// UnitDTO represents a unit in API responses
type UnitDTO struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// ToUnitDTO converts a domain unit
func ToUnitDTO(u *catalog.Unit) UnitDTO {
	return UnitDTO{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Name:        u.Name,
		Description: u.Description,
		IsActive:    u.IsActive,
	}
}

// ToUnitDTOs converts a slice of units
func ToUnitDTOs(units []catalog.Unit) []UnitDTO {
	out := make([]UnitDTO, len(units))
	for i := range units {
		out[i] = ToUnitDTO(&units[i])
	}
	return out
}
