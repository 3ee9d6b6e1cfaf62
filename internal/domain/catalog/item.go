package catalog

import (
	"fmt"

	"github.com/ak/backend/internal/domain/shared"
)

// Field limits for items
const (
	ItemCodeMaxLength        = 20
	ItemNameMaxLength        = 100
	ItemDescriptionMaxLength = 200
)

// Item is a sellable or stockable article of a company
type Item struct {
	shared.TenantEntity
	Code        string
	Name        string
	Description string
	IsActive    bool
	ItemGroupID *int64
	UnitID      *int64

	group *ItemGroup
}

// ItemOption configures an Item on construction or update
type ItemOption func(*Item)

// WithItemID sets the identity
func WithItemID(id int64) ItemOption {
	return func(i *Item) {
		i.ID = id
	}
}

// WithItemCode sets the code
func WithItemCode(code string) ItemOption {
	return func(i *Item) {
		i.Code = shared.NormalizeText(code)
	}
}

// WithItemDescription sets the description
func WithItemDescription(description string) ItemOption {
	return func(i *Item) {
		i.Description = shared.NormalizeText(description)
	}
}

// WithItemActive sets the active flag
func WithItemActive(active bool) ItemOption {
	return func(i *Item) {
		i.IsActive = active
	}
}

// WithItemGroupRef points the item at a stored group by id
func WithItemGroupRef(groupID *int64) ItemOption {
	return func(i *Item) {
		i.ItemGroupID = copyID(groupID)
		if i.group != nil && (groupID == nil || i.group.ID != *groupID) {
			i.group = nil
		}
	}
}

// WithItemUnit sets the unit of measure
func WithItemUnit(unitID *int64) ItemOption {
	return func(i *Item) {
		i.UnitID = copyID(unitID)
	}
}

// NewItem creates a validated item owned by companyID
func NewItem(companyID int64, name string, opts ...ItemOption) (*Item, error) {
	i := &Item{
		Name:     shared.NormalizeText(name),
		IsActive: true,
	}
	i.CompanyID = companyID
	for _, opt := range opts {
		opt(i)
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return i, nil
}

// Update replaces the name and applies the given options
func (i *Item) Update(name string, opts ...ItemOption) error {
	next := *i
	next.Name = shared.NormalizeText(name)
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*i = next
	return nil
}

// Validate checks the field constraints
func (i *Item) Validate() error {
	if err := shared.ValidateText("INVALID_NAME", "Item name", i.Name, ItemNameMaxLength, true); err != nil {
		return err
	}
	if err := shared.ValidateText("INVALID_CODE", "Item code", i.Code, ItemCodeMaxLength, false); err != nil {
		return err
	}
	return shared.ValidateText("INVALID_DESCRIPTION", "Item description", i.Description, ItemDescriptionMaxLength, false)
}

// Group returns the owning group when it is loaded in memory
func (i *Item) Group() *ItemGroup {
	return i.group
}

func (i *Item) attach(g *ItemGroup) {
	i.group = g
	if g.ID != 0 {
		id := g.ID
		i.ItemGroupID = &id
	} else {
		i.ItemGroupID = nil
	}
}

func (i *Item) detach() {
	i.group = nil
	i.ItemGroupID = nil
}

// Equal compares by identity only. Two distinct unsaved items are never equal.
func (i *Item) Equal(other *Item) bool {
	if i == nil || other == nil {
		return false
	}
	if i == other {
		return true
	}
	return shared.SameIdentity(i.ID, other.ID)
}

// String lists the scalar fields
func (i *Item) String() string {
	return fmt.Sprintf("Item{id=%d, companyId=%d, code='%s', name='%s', description='%s', isActive='%t'}",
		i.ID, i.CompanyID, i.Code, i.Name, i.Description, i.IsActive)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
