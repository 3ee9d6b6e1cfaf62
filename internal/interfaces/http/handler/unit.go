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

// UnitHandler handles the /api/units resource
type UnitHandler struct {
	BaseHandler
	unitService *catalogapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(base BaseHandler, unitService *catalogapp.UnitService) *UnitHandler {
	return &UnitHandler{BaseHandler: base, unitService: unitService}
}

func unitCriteria(p *dto.QueryParser) catalog.UnitCriteria {
	return catalog.UnitCriteria{
		ID:          p.Long("id"),
		CompanyID:   p.Long("companyId"),
		Name:        p.Text("name"),
		Description: p.Text("description"),
		IsActive:    p.Boolean("isActive"),
	}
}

// Create godoc
// @ID           createUnit
// @Summary      Create a new unit of measure
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.UnitRequest true "Unit to create"
// @Success      201 {object} catalogapp.UnitDTO
// @Failure      400 {object} dto.Problem
// @Security     BearerAuth
// @Router       /units [post]
func (h *UnitHandler) Create(c *gin.Context, tc shared.TenantContext) {
	var req catalogapp.UnitRequest
	if !h.BindJSON(c, &req, "unitRequest") {
		return
	}
	unit, err := h.unitService.Create(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id := strconv.FormatInt(unit.ID, 10)
	h.Created(c, "/api/units/"+id, catalogapp.UnitEntityName, id, unit)
}

// Update godoc
// @ID           updateUnit
// @Summary      Update a unit of measure
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.UnitRequest true "Unit to update"
// @Success      200 {object} catalogapp.UnitDTO
// @Failure      400 {object} dto.Problem
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /units [put]
func (h *UnitHandler) Update(c *gin.Context, tc shared.TenantContext) {
	var req catalogapp.UnitRequest
	if !h.BindJSON(c, &req, "unitRequest") {
		return
	}
	unit, err := h.unitService.Update(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, catalogapp.UnitEntityName, strconv.FormatInt(unit.ID, 10), unit)
}

// List godoc
// @ID           listUnits
// @Summary      List units of measure
// @Tags         units
// @Produce      json
// @Param        page query int    false "Zero based page" default(0)
// @Param        size query int    false "Page size" default(20)
// @Param        sort query string false "Sort expression"
// @Success      200 {array} catalogapp.UnitDTO
// @Security     BearerAuth
// @Router       /units [get]
func (h *UnitHandler) List(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := unitCriteria(p)
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.unitService.FindByCriteria(c.Request.Context(), tc, criteria, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}

// Count godoc
// @ID           countUnits
// @Summary      Count units of measure
// @Tags         units
// @Produce      json
// @Success      200 {integer} int64
// @Security     BearerAuth
// @Router       /units/count [get]
func (h *UnitHandler) Count(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := unitCriteria(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	count, err := h.unitService.CountByCriteria(c.Request.Context(), tc, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// Get godoc
// @ID           getUnit
// @Summary      Get a unit of measure
// @Tags         units
// @Produce      json
// @Param        id path int true "Unit id"
// @Success      200 {object} catalogapp.UnitDTO
// @Failure      404 "Not found"
// @Security     BearerAuth
// @Router       /units/{id} [get]
func (h *UnitHandler) Get(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	unit, err := h.unitService.FindOne(c.Request.Context(), tc, id)
	h.OKOrNotFound(c, unit, err)
}

// Delete godoc
// @ID           deleteUnit
// @Summary      Delete a unit of measure
// @Tags         units
// @Param        id path int true "Unit id"
// @Success      204
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.unitService.Delete(c.Request.Context(), tc, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, catalogapp.UnitEntityName, strconv.FormatInt(id, 10))
}

// Search godoc
// @ID           searchUnits
// @Summary      Search units by name
// @Tags         units
// @Produce      json
// @Param        query query string true "Name fragment"
// @Success      200 {array} catalogapp.UnitDTO
// @Security     BearerAuth
// @Router       /_search/units [get]
func (h *UnitHandler) Search(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	query := p.RequiredQuery()
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.unitService.Search(c.Request.Context(), tc, query, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}
