package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/ak/backend/internal/application/catalog"
	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupItemGroupRouter(groups *MockItemGroupRepository, items *MockItemRepository) *gin.Engine {
	h := NewItemGroupHandler(newTestBase(), catalogapp.NewItemGroupService(groups, items, nil))

	r := tenantRouter(testTenant)
	api := r.Group("/api")
	api.POST("/item-groups", WithTenant(h.Create))
	api.GET("/item-groups", WithTenant(h.List))
	api.GET("/item-groups/:id", WithTenant(h.Get))
	api.DELETE("/item-groups/:id", WithTenant(h.Delete))
	api.GET("/item-groups/:id/items", WithTenant(h.Items))
	api.POST("/item-groups/:id/items/:itemId", WithTenant(h.AddItem))
	api.DELETE("/item-groups/:id/items/:itemId", WithTenant(h.RemoveItem))
	return r
}

func storedGroup(t *testing.T, id int64, name string, members ...*catalog.Item) *catalog.ItemGroup {
	t.Helper()
	g, err := catalog.NewItemGroup(testTenant.CompanyID, name, catalog.WithItemGroupID(id))
	require.NoError(t, err)
	g.SetItems(members)
	return g
}

func storedItem(t *testing.T, id int64, name string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(testTenant.CompanyID, name, catalog.WithItemID(id))
	require.NoError(t, err)
	return item
}

func TestItemGroupHandler_Create(t *testing.T) {
	groups := new(MockItemGroupRepository)
	groups.On("Save", mock.Anything, mock.MatchedBy(func(g *catalog.ItemGroup) bool {
		return g.CompanyID == testTenant.CompanyID && g.Name == "Electronics"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*catalog.ItemGroup).ID = 11
	}).Return(nil)

	w := performRequest(t, setupItemGroupRouter(groups, new(MockItemRepository)), http.MethodPost, "/api/item-groups",
		map[string]any{"name": "Electronics", "code": "EL"})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/item-groups/11", w.Header().Get("Location"))
	assert.Equal(t, "akApp.itemGroup.created", w.Header().Get("X-akApp-alert"))
}

func TestItemGroupHandler_CreateWithID(t *testing.T) {
	groups := new(MockItemGroupRepository)

	w := performRequest(t, setupItemGroupRouter(groups, new(MockItemRepository)), http.MethodPost, "/api/item-groups",
		map[string]any{"id": 3, "name": "Electronics"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "itemGroup", w.Header().Get("X-akApp-params"))
	groups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestItemGroupHandler_List_ByItem(t *testing.T) {
	groups := new(MockItemGroupRepository)
	groups.On("FindAll", mock.Anything, mock.MatchedBy(func(c catalog.ItemGroupCriteria) bool {
		return *c.CompanyID.Equals == testTenant.CompanyID && c.ItemID != nil && *c.ItemID.Equals == 4
	}), mock.Anything).Return([]catalog.ItemGroup{*storedGroup(t, 1, "Tools")}, int64(1), nil)

	w := performRequest(t, setupItemGroupRouter(groups, new(MockItemRepository)), http.MethodGet, "/api/item-groups?itemId.equals=4", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	assert.Equal(t, `</api/item-groups?itemId.equals=4&page=0&size=20>; rel="last",</api/item-groups?itemId.equals=4&page=0&size=20>; rel="first"`,
		w.Header().Get("Link"))
}

func TestItemGroupHandler_Delete(t *testing.T) {
	groups := new(MockItemGroupRepository)
	items := new(MockItemRepository)
	groups.On("FindByID", mock.Anything, testTenant.CompanyID, int64(1)).Return(storedGroup(t, 1, "Tools"), nil)
	groups.On("Delete", mock.Anything, testTenant.CompanyID, int64(1)).Return(nil)

	w := performRequest(t, setupItemGroupRouter(groups, items), http.MethodDelete, "/api/item-groups/1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "akApp.itemGroup.deleted", w.Header().Get("X-akApp-alert"))
	groups.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestItemGroupHandler_Items(t *testing.T) {
	groups := new(MockItemGroupRepository)
	groups.On("FindByIDWithItems", mock.Anything, testTenant.CompanyID, int64(1)).
		Return(storedGroup(t, 1, "Tools", storedItem(t, 4, "Hammer"), storedItem(t, 5, "Saw")), nil)

	w := performRequest(t, setupItemGroupRouter(groups, new(MockItemRepository)), http.MethodGet, "/api/item-groups/1/items", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[[]catalogapp.ItemDTO](t, w)
	require.Len(t, body, 2)
	for _, item := range body {
		require.NotNil(t, item.ItemGroupID)
		assert.Equal(t, int64(1), *item.ItemGroupID)
	}
}

func TestItemGroupHandler_AddItem(t *testing.T) {
	groups := new(MockItemGroupRepository)
	items := new(MockItemRepository)
	groups.On("FindByIDWithItems", mock.Anything, testTenant.CompanyID, int64(1)).Return(storedGroup(t, 1, "Tools"), nil)
	items.On("FindByID", mock.Anything, testTenant.CompanyID, int64(4)).Return(storedItem(t, 4, "Hammer"), nil)
	items.On("Save", mock.Anything, mock.MatchedBy(func(i *catalog.Item) bool {
		return i.ID == 4 && i.ItemGroupID != nil && *i.ItemGroupID == 1
	})).Return(nil)

	w := performRequest(t, setupItemGroupRouter(groups, items), http.MethodPost, "/api/item-groups/1/items/4", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "akApp.itemGroup.updated", w.Header().Get("X-akApp-alert"))
	assert.Equal(t, "1", w.Header().Get("X-akApp-params"))
	body := decodeBody[catalogapp.ItemDTO](t, w)
	assert.Equal(t, int64(4), body.ID)
	assert.Equal(t, int64(1), *body.ItemGroupID)
	items.AssertExpectations(t)
}

func TestItemGroupHandler_AddItem_UnknownItem(t *testing.T) {
	groups := new(MockItemGroupRepository)
	items := new(MockItemRepository)
	groups.On("FindByIDWithItems", mock.Anything, testTenant.CompanyID, int64(1)).Return(storedGroup(t, 1, "Tools"), nil)
	items.On("FindByID", mock.Anything, testTenant.CompanyID, int64(99)).Return(nil, shared.ErrNotFound)

	w := performRequest(t, setupItemGroupRouter(groups, items), http.MethodPost, "/api/item-groups/1/items/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestItemGroupHandler_RemoveItem(t *testing.T) {
	groups := new(MockItemGroupRepository)
	items := new(MockItemRepository)
	groups.On("FindByIDWithItems", mock.Anything, testTenant.CompanyID, int64(1)).
		Return(storedGroup(t, 1, "Tools", storedItem(t, 4, "Hammer")), nil)
	items.On("Save", mock.Anything, mock.MatchedBy(func(i *catalog.Item) bool {
		return i.ID == 4 && i.ItemGroupID == nil
	})).Return(nil)

	w := performRequest(t, setupItemGroupRouter(groups, items), http.MethodDelete, "/api/item-groups/1/items/4", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	items.AssertExpectations(t)
}
