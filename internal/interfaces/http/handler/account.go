package handler

import (
	"net/http"

	identityapp "github.com/ak/backend/internal/application/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles sign in, sign out and the caller's own account
type AccountHandler struct {
	BaseHandler
	authService    *identityapp.AuthService
	accountService *identityapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(base BaseHandler, authService *identityapp.AuthService, accountService *identityapp.AccountService) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    base,
		authService:    authService,
		accountService: accountService,
	}
}

// JWTToken is the body returned by a successful sign in
// @Description Access token
type JWTToken struct {
	IDToken string `json:"id_token" example:"eyJhbGciOiJIUzI1NiJ9..."`
}

// Authenticate godoc
// @ID           authenticate
// @Summary      Sign in
// @Description  Checks the credentials and returns a signed access token, also sent as a bearer Authorization header
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginInput true "Credentials"
// @Success      200 {object} JWTToken
// @Header       200 {string} Authorization "Bearer token"
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Router       /authenticate [post]
func (h *AccountHandler) Authenticate(c *gin.Context) {
	var req identityapp.LoginInput
	if !h.BindJSON(c, &req, "loginVM") {
		return
	}

	result, err := h.authService.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header(middleware.AuthHeaderKey, middleware.BearerPrefix+result.Token)
	c.JSON(http.StatusOK, JWTToken{IDToken: result.Token})
}

// Logout godoc
// @ID           logout
// @Summary      Sign out
// @Description  Revokes the presented token until it expires
// @Tags         account
// @Success      204
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /logout [post]
func (h *AccountHandler) Logout(c *gin.Context, _ shared.TenantContext) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetJWTClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAccount godoc
// @ID           getAccount
// @Summary      Get the current account
// @Tags         account
// @Produce      json
// @Success      200 {object} identityapp.UserDTO
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /account [get]
func (h *AccountHandler) GetAccount(c *gin.Context, tc shared.TenantContext) {
	user, err := h.accountService.GetAccount(c.Request.Context(), tc)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SaveAccount godoc
// @ID           saveAccount
// @Summary      Update the current account
// @Description  Updates names, email and language of the caller. The login, company and authorities cannot be changed here.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identityapp.AccountRequest true "Account fields"
// @Success      200 {object} identityapp.UserDTO
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /account [post]
func (h *AccountHandler) SaveAccount(c *gin.Context, tc shared.TenantContext) {
	var req identityapp.AccountRequest
	if !h.BindJSON(c, &req, "adminUserDTO") {
		return
	}
	user, err := h.accountService.SaveAccount(c.Request.Context(), tc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @ID           changePassword
// @Summary      Change the current password
// @Tags         account
// @Accept       json
// @Param        request body identityapp.PasswordChangeRequest true "Current and new password"
// @Success      200
// @Failure      400 {object} dto.Problem
// @Failure      401 {object} dto.Problem
// @Security     BearerAuth
// @Router       /account/change-password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context, tc shared.TenantContext) {
	var req identityapp.PasswordChangeRequest
	if !h.BindJSON(c, &req, "passwordChangeDTO") {
		return
	}
	if err := h.accountService.ChangePassword(c.Request.Context(), tc, req); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
