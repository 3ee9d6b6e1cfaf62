package handler

import (
	"net/http"

	identityapp "github.com/ak/backend/internal/application/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user management for company administrators.
// Users are addressed by login.
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(base BaseHandler, userService *identityapp.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

// Create godoc
// @ID           createUser
// @Summary      Create a user
// @Description  Creates a user in the administrator's company. Login and email must be unused.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UserRequest true "User to create"
// @Success      201 {object} identityapp.UserDTO
// @Failure      400 {object} dto.Problem
// @Failure      403 {object} dto.Problem
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context, tc shared.TenantContext) {
	var req identityapp.UserRequest
	if !h.BindJSON(c, &req, "adminUserDTO") {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "/api/users/"+user.Login, identityapp.UserEntityName, user.Login, user)
}

// Update godoc
// @ID           updateUser
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UserRequest true "User to update"
// @Success      200 {object} identityapp.UserDTO
// @Failure      400 {object} dto.Problem
// @Failure      403 {object} dto.Problem
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /users [put]
func (h *UserHandler) Update(c *gin.Context, tc shared.TenantContext) {
	var req identityapp.UserRequest
	if !h.BindJSON(c, &req, "adminUserDTO") {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, identityapp.UserEntityName, user.Login, user)
}

// List godoc
// @ID           listUsers
// @Summary      List the users of the company
// @Tags         users
// @Produce      json
// @Param        page query int    false "Zero based page" default(0)
// @Param        size query int    false "Page size" default(20)
// @Param        sort query string false "Sort expression, e.g. login,asc"
// @Success      200 {array} identityapp.UserDTO
// @Failure      403 {object} dto.Problem
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context, tc shared.TenantContext) {
	p := dto.NewQueryParser(c.Request.URL.Query())
	pageable := h.Pageable(p)
	if err := p.Err(); err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.userService.List(c.Request.Context(), tc, pageable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, page)
}

// Get godoc
// @ID           getUser
// @Summary      Get a user by login
// @Tags         users
// @Produce      json
// @Param        login path string true "User login"
// @Success      200 {object} identityapp.UserDTO
// @Failure      404 "Not found"
// @Security     BearerAuth
// @Router       /users/{login} [get]
func (h *UserHandler) Get(c *gin.Context, tc shared.TenantContext) {
	user, err := h.userService.GetByLogin(c.Request.Context(), tc, c.Param("login"))
	h.OKOrNotFound(c, user, err)
}

// Delete godoc
// @ID           deleteUser
// @Summary      Delete a user by login
// @Tags         users
// @Param        login path string true "User login"
// @Success      204
// @Failure      404 {object} dto.Problem
// @Security     BearerAuth
// @Router       /users/{login} [delete]
func (h *UserHandler) Delete(c *gin.Context, tc shared.TenantContext) {
	login := c.Param("login")
	if err := h.userService.Delete(c.Request.Context(), tc, login); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, identityapp.UserEntityName, login)
}

// Authorities godoc
// @ID           listAuthorities
// @Summary      List the grantable authorities
// @Tags         users
// @Produce      json
// @Success      200 {array} string
// @Security     BearerAuth
// @Router       /users/authorities [get]
func (h *UserHandler) Authorities(c *gin.Context, _ shared.TenantContext) {
	authorities, err := h.userService.Authorities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorities)
}
