package handler

import (
	"net/http"
	"strconv"

	partnerapp "github.com/ak/backend/internal/application/partner"
	"github.com/ak/backend/internal/domain/partner"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles the /api/customers resource
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
	queryService    *partnerapp.CustomerQueryService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(base BaseHandler, customerService *partnerapp.CustomerService, queryService *partnerapp.CustomerQueryService) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler:     base,
		customerService: customerService,
		queryService:    queryService,
	}
}

// customerCriteria reads the customer filters of the query string
func customerCriteria(p *dto.QueryParser) partner.CustomerCriteria {
	return partner.CustomerCriteria{
		ID:          p.Long("id"),
		CompanyID:   p.Long("companyId"),
		Code:        p.Text("code"),
		Name:        p.Text("name"),
		CompanyName: p.Text("companyName"),
		ContactName: p.Text("contactName"),
		Phone:       p.Text("phone"),
		Email:       p.Text("email"),
		TaxID:       p.Text("taxId"),
		CreditLimit: p.Decimal("creditLimit"),
		IsActive:    p.Boolean("isActive"),
	}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a new customer
// @Description  Creates a customer owned by the caller's company. The body must not carry an id.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CustomerRequest true "Customer to create"
// @Success      201 {object} partnerapp.CustomerDTO
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Failure      500 {object} dto.Problem
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context, tc shared.TenantContext) {
	var req partnerapp.CustomerRequest
	if !h.BindJSON(c, &req, "customerRequest") {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id := strconv.FormatInt(customer.ID, 10)
	h.Created(c, "/api/customers/"+id, partnerapp.CustomerEntityName, id, customer)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Replaces a customer of the caller's company. The body must carry the id; its companyId is ignored.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CustomerRequest true "Customer to update"
// @Success      200 {object} partnerapp.CustomerDTO
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Failure      404 {object} dto.Problem
// @Failure      500 {object} dto.Problem
// @Security     BearerAuth
// @Router       /customers [put]
func (h *CustomerHandler) Update(c *gin.Context, tc shared.TenantContext) {
	var req partnerapp.CustomerRequest
	if !h.BindJSON(c, &req, "customerRequest") {
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Updated(c, partnerapp.CustomerEntityName, strconv.FormatInt(customer.ID, 10), customer)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Lists the customers of the caller's company matching the criteria. Criteria use "<field>.<operator>=<value>".
// @Tags         customers
// @Produce      json
// @Param        id.equals          query int    false "Customer id"
// @Param        name.contains      query string false "Name fragment"
// @Param        companyName.contains query string false "Company name fragment"
// @Param        isActive.equals    query bool   false "Active flag"
// @Param        page query int    false "Zero based page" default(0)
// @Param        size query int    false "Page size" default(20)
// @Param        sort query string false "Sort expression, e.g. name,asc"
// @Success      200 {array}  partnerapp.CustomerDTO
// @Header       200 {integer} X-Total-Count "Total number of matching customers"
// @Header       200 {string}  Link "RFC 5988 pagination links"
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := customerCriteria(p)
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.queryService.FindByCriteria(c.Request.Context(), tc, criteria, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}

// Count godoc
// @ID           countCustomers
// @Summary      Count customers
// @Description  Counts the customers of the caller's company matching the criteria
// @Tags         customers
// @Produce      json
// @Param        name.contains query string false "Name fragment"
// @Success      200 {integer} int64
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /customers/count [get]
func (h *CustomerHandler) Count(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	criteria := customerCriteria(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}

	count, err := h.queryService.CountByCriteria(c.Request.Context(), tc, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// Get godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Description  Returns a customer of the caller's company. Unknown ids answer 404 with an empty body.
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer id"
// @Success      200 {object} partnerapp.CustomerDTO
// @Failure      401 {object} dto.Problem
// @Failure      404 "Not found"
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customerService.FindOne(c.Request.Context(), tc, id)
	h.OKOrNotFound(c, customer, err)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Tags         customers
// @Param        id path int true "Customer id"
// @Success      204
// @Failure      401 {object} dto.Problem
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context, tc shared.TenantContext) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), tc, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, partnerapp.CustomerEntityName, strconv.FormatInt(id, 10))
}

// Search godoc
// @ID           searchCustomers
// @Summary      Search customers
// @Description  Searches the customers of the caller's company whose company name contains the query
// @Tags         customers
// @Produce      json
// @Param        query query string true "Company name fragment"
// @Param        page  query int    false "Zero based page" default(0)
// @Param        size  query int    false "Page size" default(20)
// @Param        sort  query string false "Sort expression, e.g. name,asc"
// @Success      200 {array} partnerapp.CustomerDTO
// @Header       200 {integer} X-Total-Count "Total number of matching customers"
// @Header       200 {string}  Link "RFC 5988 pagination links"
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /_search/customers [get]
func (h *CustomerHandler) Search(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	query := p.RequiredQuery()
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.queryService.Search(c.Request.Context(), tc, query, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}
