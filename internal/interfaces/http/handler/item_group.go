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

// ItemGroupHandler handles the /api/item-groups resource and its item
// membership sub-resource
type ItemGroupHandler struct {
	BaseHandler
	groupService *catalogapp.ItemGroupService
}

// NewItemGroupHandler creates a new ItemGroupHandler
func NewItemGroupHandler(base BaseHandler, groupService *catalogapp.ItemGroupService) *ItemGroupHandler {
	return &ItemGroupHandler{BaseHandler: base, groupService: groupService}
}

func itemGroupCriteria(p *dto.QueryParser) catalog.ItemGroupCriteria {
	return catalog.ItemGroupCriteria{
		ID:          p.Long("id"),
		CompanyID:   p.Long("companyId"),
		Code:        p.Text("code"),
		Name:        p.Text("name"),
		Description: p.Text("description"),
		IsActive:    p.Boolean("isActive"),
		ItemID:      p.Long("itemId"),
	}
}

// Create godoc
// @ID           createItemGroup
// @Summary      Create a new item group
// @Tags         item-groups
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ItemGroupRequest true "Item group to create"
// @Success      201 {object} catalogapp.ItemGroupDTO
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups [post]
func (h *ItemGroupHandler) Create(c *gin.Context, tc shared.TenantContext) {
	var req catalogapp.ItemGroupRequest
	if !h.BindJSON(c, &req, "itemGroupRequest") {
		return
	}
	group, err := h.groupService.Create(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id := strconv.FormatInt(group.ID, 10)
	h.Created(c, "/api/item-groups/"+id, catalogapp.ItemGroupEntityName, id, group)
}

// Update godoc
// @ID           updateItemGroup
// @Summary      Update an item group
// @Tags         item-groups
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ItemGroupRequest true "Item group to update"
// @Success      200 {object} catalogapp.ItemGroupDTO
// @Failure      400 {object} dto.Problem
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups [put]
func (h *ItemGroupHandler) Update(c *gin.Context, tc shared.TenantContext) {
	var req catalogapp.ItemGroupRequest
	if !h.BindJSON(c, &req, "itemGroupRequest") {
		return
	}
	group, err := h.groupService.Update(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, catalogapp.ItemGroupEntityName, strconv.FormatInt(group.ID, 10), group)
}

// List godoc
// @ID           listItemGroups
// @Summary      List item groups
// @Tags         item-groups
// @Produce      json
// @Param        name.contains query string false "Name fragment"
// @Param        itemId.equals query int    false "Groups containing this item"
// @Param        page query int    false "Zero based page" default(0)
// @Param        size query int    false "Page size" default(20)
// @Param        sort query string false "Sort expression"
// @Success      200 {array} catalogapp.ItemGroupDTO
// @Header       200 {integer} X-Total-Count "Total number of matching groups"
// @Header       200 {string}  Link "RFC 5988 pagination links"
// @Failure      400 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups [get]
func (h *ItemGroupHandler) List(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := itemGroupCriteria(p)
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.groupService.FindByCriteria(c.Request.Context(), tc, criteria, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}

// Count godoc
// @ID           countItemGroups
// @Summary      Count item groups
// @Tags         item-groups
// @Produce      json
// @Success      200 {integer} int64
// @Failure      400 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups/count [get]
func (h *ItemGroupHandler) Count(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := itemGroupCriteria(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	count, err := h.groupService.CountByCriteria(c.Request.Context(), tc, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// Get godoc
// @ID           getItemGroup
// @Summary      Get an item group
// @Tags         item-groups
// @Produce      json
// @Param        id path int true "Item group id"
// @Success      200 {object} catalogapp.ItemGroupDTO
// @Failure      404 "Not found"
// @Security     BearerAuth
// @Router       /item-groups/{id} [get]
func (h *ItemGroupHandler) Get(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	group, err := h.groupService.FindOne(c.Request.Context(), tc, id)
	h.OKOrNotFound(c, group, err)
}

// Delete godoc
// @ID           deleteItemGroup
// @Summary      Delete an item group
// @Description  Deletes the group. Its items stay and lose their group.
// @Tags         item-groups
// @Param        id path int true "Item group id"
// @Success      204
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups/{id} [delete]
func (h *ItemGroupHandler) Delete(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.groupService.Delete(c.Request.Context(), tc, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, catalogapp.ItemGroupEntityName, strconv.FormatInt(id, 10))
}

// Search godoc
// @ID           searchItemGroups
// @Summary      Search item groups by name
// @Tags         item-groups
// @Produce      json
// @Param        query query string true "Name fragment"
// @Success      200 {array} catalogapp.ItemGroupDTO
// @Security     BearerAuth
// @Router       /_search/item-groups [get]
func (h *ItemGroupHandler) Search(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	query := p.RequiredQuery()
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.groupService.Search(c.Request.Context(), tc, query, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}

// Items godoc
// @ID           listItemGroupItems
// @Summary      List the items of a group
// @Tags         item-groups
// @Produce      json
// @Param        id path int true "Item group id"
// @Success      200 {array} catalogapp.ItemDTO
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups/{id}/items [get]
func (h *ItemGroupHandler) Items(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	items, err := h.groupService.Items(c.Request.Context(), tc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem godoc
// @ID           addItemGroupItem
// @Summary      Attach an item to a group
// @Tags         item-groups
// @Produce      json
// @Param        id     path int true "Item group id"
// @Param        itemId path int true "Item id"
// @Success      200 {object} catalogapp.ItemDTO
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups/{id}/items/{itemId} [post]
func (h *ItemGroupHandler) AddItem(c *gin.Context, tc shared.TenantContext) {
	groupID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.PathID(c, "itemId")
	if !ok {
		return
	}
	item, err := h.groupService.AddItem(c.Request.Context(), tc, groupID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, catalogapp.ItemGroupEntityName, strconv.FormatInt(groupID, 10), item)
}

// RemoveItem godoc
// @ID           removeItemGroupItem
// @Summary      Detach an item from a group
// @Tags         item-groups
// @Param        id     path int true "Item group id"
// @Param        itemId path int true "Item id"
// @Success      204
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /item-groups/{id}/items/{itemId} [delete]
func (h *ItemGroupHandler) RemoveItem(c *gin.Context, tc shared.TenantContext) {
	groupID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.PathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.groupService.RemoveItem(c.Request.Context(), tc, groupID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.alert(c, catalogapp.ItemGroupEntityName, "updated", strconv.FormatInt(groupID, 10))
	c.Status(http.StatusNoContent)
}
