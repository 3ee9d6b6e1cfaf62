package handler

import (
	"net/http"
	"strconv"

	catalogapp "github.com/ak/backend/internal/application/catalog"
	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles the /api/items resource
type ItemHandler struct {
	BaseHandler
	itemService *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(base BaseHandler, itemService *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{BaseHandler: base, itemService: itemService}
}

func itemCriteria(p *dto.QueryParser) catalog.ItemCriteria {
	return catalog.ItemCriteria{
		ID:          p.Long("id"),
		CompanyID:   p.Long("companyId"),
		Code:        p.Text("code"),
		Name:        p.Text("name"),
		Description: p.Text("description"),
		IsActive:    p.Boolean("isActive"),
		ItemGroupID: p.Long("itemGroupId"),
		UnitID:      p.Long("unitId"),
	}
}

// Create godoc
// @ID           createItem
// @Summary      Create a new item
// @Description  The referenced item group and unit must belong to the caller's company.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ItemRequest true "Item to create"
// @Success      201 {object} catalogapp.ItemDTO
// @Failure      400 {object} dto.Problem
// @Security     BearerAuth
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context, tc shared.TenantContext) {
	var req catalogapp.ItemRequest
	if !h.BindJSON(c, &req, "itemRequest") {
		return
	}
	item, err := h.itemService.Create(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id := strconv.FormatInt(item.ID, 10)
	h.Created(c, "/api/items/"+id, catalogapp.ItemEntityName, id, item)
}

// Update godoc
// @ID           updateItem
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ItemRequest true "Item to update"
// @Success      200 {object} catalogapp.ItemDTO
// @Failure      400 {object} dto.Problem
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /items [put]
func (h *ItemHandler) Update(c *gin.Context, tc shared.TenantContext) {
	var req catalogapp.ItemRequest
	if !h.BindJSON(c, &req, "itemRequest") {
		return
	}
	item, err := h.itemService.Update(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, catalogapp.ItemEntityName, strconv.FormatInt(item.ID, 10), item)
}

// List godoc
// @ID           listItems
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        itemGroupId.equals query int false "Item group id"
// @Param        unitId.equals      query int false "Unit id"
// @Param        page query int    false "Zero based page" default(0)
// @Param        size query int    false "Page size" default(20)
// @Param        sort query string false "Sort expression"
// @Success      200 {array} catalogapp.ItemDTO
// @Security     BearerAuth
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := itemCriteria(p)
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.itemService.FindByCriteria(c.Request.Context(), tc, criteria, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}

// Count godoc
// @ID           countItems
// @Summary      Count items
// @Tags         items
// @Produce      json
// @Success      200 {integer} int64
// @Security     BearerAuth
// @Router       /items/count [get]
func (h *ItemHandler) Count(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := itemCriteria(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	count, err := h.itemService.CountByCriteria(c.Request.Context(), tc, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// Get godoc
// @ID           getItem
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id path int true "Item id"
// @Success      200 {object} catalogapp.ItemDTO
// @Failure      404 "Not found"
// @Security     BearerAuth
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	item, err := h.itemService.FindOne(c.Request.Context(), tc, id)
	h.OKOrNotFound(c, item, err)
}

// Delete godoc
// @ID           deleteItem
// @Summary      Delete an item
// @Tags         items
// @Param        id path int true "Item id"
// @Success      204
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.itemService.Delete(c.Request.Context(), tc, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, catalogapp.ItemEntityName, strconv.FormatInt(id, 10))
}

// Search godoc
// @ID           searchItems
// @Summary      Search items by name
// @Tags         items
// @Produce      json
// @Param        query query string true "Name fragment"
// @Success      200 {array} catalogapp.ItemDTO
// @Security     BearerAuth
// @Router       /_search/items [get]
func (h *ItemHandler) Search(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	query := p.RequiredQuery()
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.itemService.Search(c.Request.Context(), tc, query, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}
