package catalog

import "github.com/ak/backend/internal/domain/shared"

// ItemGroupCriteria filters item groups. Empty filters match everything.
type ItemGroupCriteria struct {
	ID          *shared.LongFilter
	CompanyID   *shared.LongFilter
	Code        *shared.StringFilter
	Name        *shared.StringFilter
	Description *shared.StringFilter
	IsActive    *shared.BooleanFilter
	ItemID      *shared.LongFilter
}

// ForCompany returns a copy whose company filter is forced to companyID
func (c ItemGroupCriteria) ForCompany(companyID int64) ItemGroupCriteria {
	c.CompanyID = shared.LongEquals(companyID)
	return c
}

// ItemCriteria filters items
type ItemCriteria struct {
	ID          *shared.LongFilter
	CompanyID   *shared.LongFilter
	Code        *shared.StringFilter
	Name        *shared.StringFilter
	Description *shared.StringFilter
	IsActive    *shared.BooleanFilter
	ItemGroupID *shared.LongFilter
	UnitID      *shared.LongFilter
}

// ForCompany returns a copy whose company filter is forced to companyID
func (c ItemCriteria) ForCompany(companyID int64) ItemCriteria {
	c.CompanyID = shared.LongEquals(companyID)
	return c
}

// UnitCriteria filters units
type UnitCriteria struct {
	ID          *shared.LongFilter
	CompanyID   *shared.LongFilter
	Name        *shared.StringFilter
	Description *shared.StringFilter
	IsActive    *shared.BooleanFilter
}

// ForCompany returns a copy whose company filter is forced to companyID
func (c UnitCriteria) ForCompany(companyID int64) UnitCriteria {
	c.CompanyID = shared.LongEquals(companyID)
	return c
}
