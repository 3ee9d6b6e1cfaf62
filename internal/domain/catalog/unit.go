package catalog

import (
	"fmt"

	"github.com/ak/backend/internal/domain/shared"
)

// Field limits for units
const (
	UnitNameMaxLength        = 10
	UnitDescriptionMaxLength = 200
)

// Unit is a unit of measure (pcs, kg, box) defined per company
type Unit struct {
	shared.TenantEntity
	Name        string
	Description string
	IsActive    bool
}

// UnitOption configures a Unit
type UnitOption func(*Unit)

// WithUnitID sets the identity
func WithUnitID(id int64) UnitOption {
	return func(u *Unit) {
		u.ID = id
	}
}

// WithUnitDescription sets the description
func WithUnitDescription(description string) UnitOption {
	return func(u *Unit) {
		u.Description = shared.NormalizeText(description)
	}
}

// WithUnitActive sets the active flag
func WithUnitActive(active bool) UnitOption {
	return func(u *Unit) {
		u.IsActive = active
	}
}

// NewUnit creates a validated unit
func NewUnit(companyID int64, name string, opts ...UnitOption) (*Unit, error) {
	u := &Unit{Name: shared.NormalizeText(name), IsActive: true}
	u.CompanyID = companyID
	for _, opt := range opts {
		opt(u)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Update replaces the name and applies the given options
func (u *Unit) Update(name string, opts ...UnitOption) error {
	next := *u
	next.Name = shared.NormalizeText(name)
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*u = next
	return nil
}

// Validate checks the field constraints
func (u *Unit) Validate() error {
	if err := shared.ValidateText("INVALID_NAME", "Unit name", u.Name, UnitNameMaxLength, true); err != nil {
		return err
	}
	return shared.ValidateText("INVALID_DESCRIPTION", "Unit description", u.Description, UnitDescriptionMaxLength, false)
}

// Equal compares by identity only
func (u *Unit) Equal(other *Unit) bool {
	if u == nil || other == nil {
		return false
	}
	if u == other {
		return true
	}
	return shared.SameIdentity(u.ID, other.ID)
}

func (u *Unit) String() string {
	return fmt.Sprintf("Unit{id=%d, companyId=%d, name='%s', description='%s', isActive='%t'}",
		u.ID, u.CompanyID, u.Name, u.Description, u.IsActive)
}
