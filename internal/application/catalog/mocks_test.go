package catalog

import (
	"context"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockItemGroupRepository is a mock implementation of ItemGroupRepository
type MockItemGroupRepository struct {
	mock.Mock
}

func (m *MockItemGroupRepository) FindAll(ctx context.Context, criteria catalog.ItemGroupCriteria, pageable shared.Pageable) ([]catalog.ItemGroup, int64, error) {
	args := m.Called(ctx, criteria, pageable)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.ItemGroup), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemGroupRepository) Count(ctx context.Context, criteria catalog.ItemGroupCriteria) (int64, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemGroupRepository) FindByID(ctx context.Context, companyID, id int64) (*catalog.ItemGroup, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ItemGroup), args.Error(1)
}

func (m *MockItemGroupRepository) FindByIDWithItems(ctx context.Context, companyID, id int64) (*catalog.ItemGroup, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ItemGroup), args.Error(1)
}

func (m *MockItemGroupRepository) Save(ctx context.Context, group *catalog.ItemGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockItemGroupRepository) Delete(ctx context.Context, companyID, id int64) error {
	return m.Called(ctx, companyID, id).Error(0)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindAll(ctx context.Context, criteria catalog.ItemCriteria, pageable shared.Pageable) ([]catalog.Item, int64, error) {
	args := m.Called(ctx, criteria, pageable)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) Count(ctx context.Context, criteria catalog.ItemCriteria) (int64, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, companyID, id int64) (*catalog.Item, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, companyID, id int64) error {
	return m.Called(ctx, companyID, id).Error(0)
}

// MockUnitRepository is a mock implementation of UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindAll(ctx context.Context, criteria catalog.UnitCriteria, pageable shared.Pageable) ([]catalog.Unit, int64, error) {
	args := m.Called(ctx, criteria, pageable)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.Unit), args.Get(1).(int64), args.Error(2)
}

func (m *MockUnitRepository) Count(ctx context.Context, criteria catalog.UnitCriteria) (int64, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) FindByID(ctx context.Context, companyID, id int64) (*catalog.Unit, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, companyID, id int64) error {
	return m.Called(ctx, companyID, id).Error(0)
}

var (
	_ catalog.ItemGroupRepository = (*MockItemGroupRepository)(nil)
	_ catalog.ItemRepository      = (*MockItemRepository)(nil)
	_ catalog.UnitRepository      = (*MockUnitRepository)(nil)
)
