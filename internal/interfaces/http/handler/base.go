// Package handler implements the REST resources of the /api group.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/ak/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultAppName prefixes the alert headers when none is configured
const DefaultAppName = "akApp"

// BaseHandler provides common handler utilities
type BaseHandler struct {
	appName    string
	pagination config.PaginationConfig
}

// NewBaseHandler creates the helpers shared by every resource. appName is
// the prefix of the alert headers.
func NewBaseHandler(appName string, pagination config.PaginationConfig) BaseHandler {
	if appName == "" {
		appName = DefaultAppName
	}
	if pagination.DefaultSize <= 0 {
		pagination.DefaultSize = shared.DefaultPageSize
	}
	if pagination.MaxSize <= 0 {
		pagination.MaxSize = shared.MaxPageSize
	}
	return BaseHandler{appName: appName, pagination: pagination}
}

// TenantHandlerFunc is a handler that receives the caller's tenant explicitly
type TenantHandlerFunc func(c *gin.Context, tc shared.TenantContext)

// WithTenant adapts fn to gin. Requests without a resolved tenant are
// answered 401 before fn runs.
func WithTenant(fn TenantHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := middleware.GetTenant(c)
		if !ok {
			middleware.AbortWithProblem(c, dto.ErrCodeUnauthorized, "Full authentication is required to access this resource")
			return
		}
		fn(c, tc)
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(logger.GinRequestIDKey)
}

// problem writes p with the request path and id stamped on it
func (h *BaseHandler) problem(c *gin.Context, p dto.Problem) {
	c.AbortWithStatusJSON(p.Status, p.WithRequest(c.Request.URL.Path, requestID(c)))
}

// ErrorWithCode sends a problem whose status is derived from the error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, detail string) {
	h.problem(c, dto.NewProblem(dto.GetHTTPStatus(code), code, detail))
}

// BadRequest sends a 400 problem
func (h *BaseHandler) BadRequest(c *gin.Context, detail string) {
	h.ErrorWithCode(c, dto.ErrCodeBadRequest, detail)
}

// HandleError renders err as a problem body:
//   - *shared.AlertError: 400 with the failure alert headers
//   - *dto.InvalidQueryError: 400
//   - *shared.DomainError: status of its normalized code
//   - anything else: 500, logged with the request logger
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var alertErr *shared.AlertError
	if errors.As(err, &alertErr) {
		h.failureAlert(c, alertErr.EntityName, alertErr.ErrorKey)
		h.problem(c, dto.NewAlertProblem(alertErr.EntityName, alertErr.ErrorKey, alertErr.Message))
		return
	}

	var queryErr *dto.InvalidQueryError
	if errors.As(err, &queryErr) {
		h.ErrorWithCode(c, dto.ErrCodeInvalidQuery, queryErr.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		p := dto.NewProblem(dto.GetHTTPStatus(code), code, domainErr.Message)
		if code == dto.ErrCodeNotFound {
			p.Type = dto.NotFoundType
		}
		h.problem(c, p)
		return
	}

	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	h.ErrorWithCode(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON decodes the body into obj. On failure it writes the problem
// (field errors, malformed JSON or oversized body) and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any, objectName string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	if fieldErrors := middleware.FieldErrors(err, objectName); fieldErrors != nil {
		h.problem(c, dto.NewValidationProblem(fieldErrors))
		return false
	}

	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxBytesErr):
		h.ErrorWithCode(c, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
	case errors.Is(err, io.EOF):
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Request body is required")
	case errors.As(err, &typeErr):
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Invalid value for field "+typeErr.Field)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Malformed JSON request body")
	default:
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, err.Error())
	}
	return false
}

// PathID parses a numeric path parameter. It writes a 400 problem and
// returns false when the value is not a positive integer.
func (h *BaseHandler) PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// OKOrNotFound writes body as 200, or an empty 404 when err is
// shared.ErrNotFound. Other errors go through HandleError.
func (h *BaseHandler) OKOrNotFound(c *gin.Context, body any, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// Pageable reads page, size and sort from the query
func (h *BaseHandler) Pageable(p *dto.QueryParser) shared.Pageable {
	return p.Pageable(h.pagination.DefaultSize, h.pagination.MaxSize)
}
