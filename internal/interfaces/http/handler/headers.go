package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pagination headers
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

func (h *BaseHandler) alertHeader() string  { return "X-" + h.appName + "-alert" }
func (h *BaseHandler) errorHeader() string  { return "X-" + h.appName + "-error" }
func (h *BaseHandler) paramsHeader() string { return "X-" + h.appName + "-params" }

// alert sets "<app>.<entity>.<action>" and the parameter the client
// interpolates into the translated message
func (h *BaseHandler) alert(c *gin.Context, entityName, action, param string) {
	c.Header(h.alertHeader(), h.appName+"."+entityName+"."+action)
	c.Header(h.paramsHeader(), param)
}

func (h *BaseHandler) failureAlert(c *gin.Context, entityName, errorKey string) {
	c.Header(h.errorHeader(), "error."+errorKey)
	c.Header(h.paramsHeader(), entityName)
}

// Created writes 201 with the Location of the new resource and the
// creation alert
func (h *BaseHandler) Created(c *gin.Context, location, entityName, param string, body any) {
	c.Header("Location", location)
	h.alert(c, entityName, "created", param)
	c.JSON(http.StatusCreated, body)
}

// Updated writes 200 with the update alert
func (h *BaseHandler) Updated(c *gin.Context, entityName, param string, body any) {
	h.alert(c, entityName, "updated", param)
	c.JSON(http.StatusOK, body)
}

// Deleted writes 204 with the deletion alert
func (h *BaseHandler) Deleted(c *gin.Context, entityName, param string) {
	h.alert(c, entityName, "deleted", param)
	c.Status(http.StatusNoContent)
}

// writePage writes the page content with X-Total-Count and Link
func writePage[T any](c *gin.Context, page shared.Page[T]) {
	c.Header(HeaderTotalCount, strconv.FormatInt(page.TotalElements, 10))
	c.Header(HeaderLink, paginationLink(c.Request.URL, page.Number, page.Size, page.TotalPages()))
	c.JSON(http.StatusOK, page.Content)
}

// paginationLink builds the RFC 5988 Link value: next and prev when they
// exist, then last and first. Other query parameters are kept.
func paginationLink(u *url.URL, number, size, totalPages int) string {
	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}

	links := make([]string, 0, 4)
	if number < lastPage {
		links = append(links, linkEntry(u, number+1, size, "next"))
	}
	if number > 0 {
		links = append(links, linkEntry(u, number-1, size, "prev"))
	}
	links = append(links,
		linkEntry(u, lastPage, size, "last"),
		linkEntry(u, 0, size, "first"),
	)
	return strings.Join(links, ",")
}

func linkEntry(u *url.URL, page, size int, rel string) string {
	q := u.Query()
	q.Set(dto.ParamPage, strconv.Itoa(page))
	q.Set(dto.ParamSize, strconv.Itoa(size))
	target := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return fmt.Sprintf("<%s>; rel=\"%s\"", target.String(), rel)
}
