package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newItemService() (*ItemService, *MockItemRepository, *MockItemGroupRepository, *MockUnitRepository) {
	items := new(MockItemRepository)
	groups := new(MockItemGroupRepository)
	units := new(MockUnitRepository)
	return NewItemService(items, groups, units, nil), items, groups, units
}

func TestItemService_Create(t *testing.T) {
	t.Run("with group and unit", func(t *testing.T) {
		svc, items, groups, units := newItemService()
		unit, err := catalog.NewUnit(testTenant.CompanyID, "pcs", catalog.WithUnitID(2))
		require.NoError(t, err)

		groups.On("FindByID", mock.Anything, testTenant.CompanyID, int64(3)).Return(storedGroup(t, 3), nil)
		units.On("FindByID", mock.Anything, testTenant.CompanyID, int64(2)).Return(unit, nil)
		items.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*catalog.Item).ID = 30
		}).Return(nil)

		dto, err := svc.Create(context.Background(), testTenant, ItemRequest{
			Name: "Hammer", ItemGroupID: int64Ptr(3), UnitID: int64Ptr(2),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(30), dto.ID)
		assert.Equal(t, int64(3), *dto.ItemGroupID)
		assert.Equal(t, int64(2), *dto.UnitID)
	})

	t.Run("group of another company", func(t *testing.T) {
		svc, items, groups, _ := newItemService()
		groups.On("FindByID", mock.Anything, testTenant.CompanyID, int64(99)).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(context.Background(), testTenant, ItemRequest{Name: "Hammer", ItemGroupID: int64Ptr(99)})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REFERENCE", domainErr.Code)
		items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is not masked", func(t *testing.T) {
		svc, _, _, units := newItemService()
		boom := errors.New("db down")
		units.On("FindByID", mock.Anything, testTenant.CompanyID, int64(2)).Return(nil, boom)

		_, err := svc.Create(context.Background(), testTenant, ItemRequest{Name: "Hammer", UnitID: int64Ptr(2)})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("id exists", func(t *testing.T) {
		svc, _, _, _ := newItemService()
		_, err := svc.Create(context.Background(), testTenant, ItemRequest{ID: int64Ptr(1), Name: "Hammer"})
		var alert *shared.AlertError
		require.ErrorAs(t, err, &alert)
		assert.Equal(t, ItemEntityName, alert.EntityName)
	})
}

func TestItemService_Update(t *testing.T) {
	svc, items, _, _ := newItemService()
	items.On("FindByID", mock.Anything, testTenant.CompanyID, int64(20)).Return(storedItem(t, 20, int64Ptr(3)), nil)
	items.On("Save", mock.Anything, mock.MatchedBy(func(i *catalog.Item) bool {
		return i.ItemGroupID == nil && i.Name == "Mallet"
	})).Return(nil)

	dto, err := svc.Update(context.Background(), testTenant, ItemRequest{ID: int64Ptr(20), Name: "Mallet"})
	require.NoError(t, err)
	assert.Nil(t, dto.ItemGroupID)

	_, err = svc.Update(context.Background(), testTenant, ItemRequest{Name: "Mallet"})
	var alert *shared.AlertError
	require.ErrorAs(t, err, &alert)
	assert.Equal(t, shared.ErrorKeyIDNull, alert.ErrorKey)
}

func TestUnitService(t *testing.T) {
	units := new(MockUnitRepository)
	svc := NewUnitService(units, nil)

	units.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*catalog.Unit).ID = 5
	}).Return(nil)
	units.On("FindByID", mock.Anything, testTenant.CompanyID, int64(6)).Return(nil, shared.ErrNotFound)
	units.On("Delete", mock.Anything, testTenant.CompanyID, int64(5)).Return(nil)

	dto, err := svc.Create(context.Background(), testTenant, UnitRequest{Name: "kg"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), dto.ID)
	assert.True(t, dto.IsActive)

	_, err = svc.Create(context.Background(), testTenant, UnitRequest{Name: "kilograms!!"})
	assert.Error(t, err, "name longer than 10 characters")

	_, err = svc.FindOne(context.Background(), testTenant, 6)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.NoError(t, svc.Delete(context.Background(), testTenant, 5))
}
