package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/partner"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/ak/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testTenant = shared.TenantContext{UserID: 3, Login: "user", CompanyID: 7}

func newTestBase() BaseHandler {
	return NewBaseHandler("akApp", config.PaginationConfig{DefaultSize: 20, MaxSize: 2000})
}

// tenantRouter returns an engine whose requests carry tc as resolved tenant
func tenantRouter(tc shared.TenantContext) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.TenantKey, tc)
		c.Next()
	})
	return r
}

func performRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) dto.Problem {
	t.Helper()
	return decodeBody[dto.Problem](t, w)
}

func int64Ptr(v int64) *int64 { return &v }

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, criteria partner.CustomerCriteria, pageable shared.Pageable) ([]partner.Customer, int64, error) {
	args := m.Called(ctx, criteria, pageable)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Count(ctx context.Context, criteria partner.CustomerCriteria) (int64, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, companyID, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, companyID, id int64) error {
	return m.Called(ctx, companyID, id).Error(0)
}

var _ partner.CustomerRepository = (*MockCustomerRepository)(nil)

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

var _ catalog.ItemGroupRepository = (*MockItemGroupRepository)(nil)

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

var _ catalog.ItemRepository = (*MockItemRepository)(nil)
