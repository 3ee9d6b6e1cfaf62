package persistence

import (
	"context"
	"testing"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	groups *GormItemGroupRepository
	items  *GormItemRepository
	units  *GormUnitRepository
}

func newCatalogFixture(t *testing.T) (*catalogFixture, *gorm.DB) {
	db := newSQLiteDB(t)
	return &catalogFixture{
		groups: NewGormItemGroupRepository(db),
		items:  NewGormItemRepository(db),
		units:  NewGormUnitRepository(db),
	}, db
}

func (f *catalogFixture) group(t *testing.T, companyID int64, name string, opts ...catalog.ItemGroupOption) *catalog.ItemGroup {
	t.Helper()
	g, err := catalog.NewItemGroup(companyID, name, opts...)
	require.NoError(t, err)
	require.NoError(t, f.groups.Save(context.Background(), g))
	return g
}

func (f *catalogFixture) item(t *testing.T, companyID int64, name string, group *catalog.ItemGroup) *catalog.Item {
	t.Helper()
	i, err := catalog.NewItem(companyID, name)
	require.NoError(t, err)
	if group != nil {
		group.AddItem(i)
	}
	require.NoError(t, f.items.Save(context.Background(), i))
	return i
}

func TestGormItemGroupRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	f, _ := newCatalogFixture(t)

	g := f.group(t, 1, "Electronics", catalog.WithItemGroupCode("ELEC"), catalog.WithItemGroupDescription("Gadgets"))
	require.NotZero(t, g.ID)

	found, err := f.groups.FindByID(ctx, 1, g.ID)
	require.NoError(t, err)
	assert.True(t, found.Equal(g))
	assert.Equal(t, "ELEC", found.Code)
	assert.Equal(t, "Gadgets", found.Description)
	assert.Empty(t, found.Items())

	_, err = f.groups.FindByID(ctx, 2, g.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, g.Update("Electronics & Audio", catalog.WithItemGroupActive(false)))
	require.NoError(t, f.groups.Save(ctx, g))

	found, err = f.groups.FindByID(ctx, 1, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics & Audio", found.Name)
	assert.False(t, found.IsActive)
}

func TestGormItemGroupRepository_FindByIDWithItems(t *testing.T) {
	ctx := context.Background()
	f, _ := newCatalogFixture(t)

	g := f.group(t, 1, "Tools")
	hammer := f.item(t, 1, "Hammer", g)
	saw := f.item(t, 1, "Saw", g)
	f.item(t, 1, "Loose", nil)

	loaded, err := f.groups.FindByIDWithItems(ctx, 1, g.ID)
	require.NoError(t, err)

	items := loaded.Items()
	require.Len(t, items, 2)
	assert.True(t, items[0].Equal(hammer))
	assert.True(t, items[1].Equal(saw))
	for _, item := range items {
		assert.Same(t, loaded, item.Group())
		require.NotNil(t, item.ItemGroupID)
		assert.Equal(t, g.ID, *item.ItemGroupID)
	}
}

func TestGormItemGroupRepository_Criteria(t *testing.T) {
	ctx := context.Background()
	f, _ := newCatalogFixture(t)

	tools := f.group(t, 1, "Tools")
	f.group(t, 1, "Toys")
	f.group(t, 2, "Tools abroad")
	hammer := f.item(t, 1, "Hammer", tools)

	t.Run("name contains within company", func(t *testing.T) {
		groups, total, err := f.groups.FindAll(ctx, catalog.ItemGroupCriteria{Name: shared.StringContains("TO")}.ForCompany(1), shared.DefaultPageable())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, groups, 2)
	})

	t.Run("groups holding an item", func(t *testing.T) {
		criteria := catalog.ItemGroupCriteria{ItemID: shared.LongEquals(hammer.ID)}.ForCompany(1)
		groups, total, err := f.groups.FindAll(ctx, criteria, shared.DefaultPageable())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, groups, 1)
		assert.Equal(t, tools.ID, groups[0].ID)
	})

	t.Run("count", func(t *testing.T) {
		count, err := f.groups.Count(ctx, catalog.ItemGroupCriteria{}.ForCompany(2))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormItemGroupRepository_Delete(t *testing.T) {
	ctx := context.Background()
	f, _ := newCatalogFixture(t)

	g := f.group(t, 1, "Obsolete")
	item := f.item(t, 1, "Survivor", g)

	assert.ErrorIs(t, f.groups.Delete(ctx, 2, g.ID), shared.ErrNotFound)

	require.NoError(t, f.groups.Delete(ctx, 1, g.ID))

	_, err := f.groups.FindByID(ctx, 1, g.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	survivor, err := f.items.FindByID(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.ItemGroupID)
}

func TestGormItemRepository(t *testing.T) {
	ctx := context.Background()
	f, _ := newCatalogFixture(t)

	g := f.group(t, 1, "Fasteners")
	screw := f.item(t, 1, "Screw", g)
	nail := f.item(t, 1, "Nail", g)
	f.item(t, 2, "Foreign screw", nil)

	t.Run("filter by group", func(t *testing.T) {
		items, total, err := f.items.FindAll(ctx, catalog.ItemCriteria{ItemGroupID: shared.LongEquals(g.ID)}.ForCompany(1), shared.DefaultPageable())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
	})

	t.Run("remove from group persists a null reference", func(t *testing.T) {
		g.RemoveItem(nail)
		require.NoError(t, f.items.Save(ctx, nail))

		found, err := f.items.FindByID(ctx, 1, nail.ID)
		require.NoError(t, err)
		assert.Nil(t, found.ItemGroupID)
	})

	t.Run("delete is scoped", func(t *testing.T) {
		assert.ErrorIs(t, f.items.Delete(ctx, 2, screw.ID), shared.ErrNotFound)
		require.NoError(t, f.items.Delete(ctx, 1, screw.ID))
		_, err := f.items.FindByID(ctx, 1, screw.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUnitRepository(t *testing.T) {
	ctx := context.Background()
	f, _ := newCatalogFixture(t)

	kg, err := catalog.NewUnit(1, "kg", catalog.WithUnitDescription("Kilogram"))
	require.NoError(t, err)
	require.NoError(t, f.units.Save(ctx, kg))
	pcs, err := catalog.NewUnit(1, "pcs")
	require.NoError(t, err)
	require.NoError(t, f.units.Save(ctx, pcs))

	units, total, err := f.units.FindAll(ctx, catalog.UnitCriteria{}.ForCompany(1),
		shared.Pageable{Size: 10, Sort: []shared.Order{{Property: "name", Direction: shared.Desc}}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, units, 2)
	assert.Equal(t, "pcs", units[0].Name)

	require.NoError(t, kg.Update("kilo", catalog.WithUnitDescription("Kilogram")))
	require.NoError(t, f.units.Save(ctx, kg))
	found, err := f.units.FindByID(ctx, 1, kg.ID)
	require.NoError(t, err)
	assert.Equal(t, "kilo", found.Name)

	require.NoError(t, f.units.Delete(ctx, 1, kg.ID))
	count, err := f.units.Count(ctx, catalog.UnitCriteria{}.ForCompany(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
