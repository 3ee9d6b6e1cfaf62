package catalog

import (
	"fmt"

	"github.com/ak/backend/internal/domain/shared"
)

// Field limits for item groups
const (
	ItemGroupCodeMaxLength        = 10
	ItemGroupNameMaxLength        = 50
	ItemGroupDescriptionMaxLength = 200
)

// ItemGroup groups the items of a company.
// Items keep a back-reference to their group; AddItem and RemoveItem keep
// both sides in sync.
type ItemGroup struct {
	shared.TenantEntity
	Code        string
	Name        string
	Description string
	IsActive    bool

	items []*Item
}

// ItemGroupOption configures an ItemGroup on construction or update
type ItemGroupOption func(*ItemGroup)

// WithItemGroupID sets the identity, used when rebuilding a stored group
func WithItemGroupID(id int64) ItemGroupOption {
	return func(g *ItemGroup) {
		g.ID = id
	}
}

// WithItemGroupCode sets the short code
func WithItemGroupCode(code string) ItemGroupOption {
	return func(g *ItemGroup) {
		g.Code = shared.NormalizeText(code)
	}
}

// WithItemGroupDescription sets the description
func WithItemGroupDescription(description string) ItemGroupOption {
	return func(g *ItemGroup) {
		g.Description = shared.NormalizeText(description)
	}
}

// WithItemGroupActive sets the active flag
func WithItemGroupActive(active bool) ItemGroupOption {
	return func(g *ItemGroup) {
		g.IsActive = active
	}
}

// NewItemGroup creates a validated item group owned by companyID
func NewItemGroup(companyID int64, name string, opts ...ItemGroupOption) (*ItemGroup, error) {
	g := &ItemGroup{
		Name:     shared.NormalizeText(name),
		IsActive: true,
		items:    make([]*Item, 0),
	}
	g.CompanyID = companyID
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Update replaces the name and applies the given options
func (g *ItemGroup) Update(name string, opts ...ItemGroupOption) error {
	next := *g
	next.Name = shared.NormalizeText(name)
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*g = next
	return nil
}

// Validate checks the field constraints
func (g *ItemGroup) Validate() error {
	if err := shared.ValidateText("INVALID_NAME", "Item group name", g.Name, ItemGroupNameMaxLength, true); err != nil {
		return err
	}
	if err := shared.ValidateText("INVALID_CODE", "Item group code", g.Code, ItemGroupCodeMaxLength, false); err != nil {
		return err
	}
	return shared.ValidateText("INVALID_DESCRIPTION", "Item group description", g.Description, ItemGroupDescriptionMaxLength, false)
}

// Items returns the items of the group
func (g *ItemGroup) Items() []*Item {
	out := make([]*Item, len(g.items))
	copy(out, g.items)
	return out
}

// SetItems replaces the item set and rewires every back-reference
func (g *ItemGroup) SetItems(items []*Item) {
	for _, item := range g.items {
		item.detach()
	}
	g.items = make([]*Item, 0, len(items))
	for _, item := range items {
		g.AddItem(item)
	}
}

// AddItem adds an item to the group and points the item at the group.
// An item already in the set is ignored. An item owned by another group is
// moved.
func (g *ItemGroup) AddItem(item *Item) *ItemGroup {
	if item == nil || g.indexOf(item) >= 0 {
		return g
	}
	if owner := item.group; owner != nil && owner != g {
		owner.RemoveItem(item)
	}
	g.items = append(g.items, item)
	item.attach(g)
	return g
}

// RemoveItem removes an item from the group and clears its back-reference
func (g *ItemGroup) RemoveItem(item *Item) *ItemGroup {
	idx := g.indexOf(item)
	if idx < 0 {
		return g
	}
	removed := g.items[idx]
	g.items = append(g.items[:idx], g.items[idx+1:]...)
	removed.detach()
	if removed != item {
		item.detach()
	}
	return g
}

// HasItem reports whether the item belongs to the set
func (g *ItemGroup) HasItem(item *Item) bool {
	return g.indexOf(item) >= 0
}

func (g *ItemGroup) indexOf(item *Item) int {
	if item == nil {
		return -1
	}
	for i, existing := range g.items {
		if existing == item || existing.Equal(item) {
			return i
		}
	}
	return -1
}

// Equal compares by identity only. Two distinct unsaved groups are never equal.
func (g *ItemGroup) Equal(other *ItemGroup) bool {
	if g == nil || other == nil {
		return false
	}
	if g == other {
		return true
	}
	return shared.SameIdentity(g.ID, other.ID)
}

// String lists the scalar fields
func (g *ItemGroup) String() string {
	return fmt.Sprintf("ItemGroup{id=%d, companyId=%d, code='%s', name='%s', description='%s', isActive='%t'}",
		g.ID, g.CompanyID, g.Code, g.Name, g.Description, g.IsActive)
}
