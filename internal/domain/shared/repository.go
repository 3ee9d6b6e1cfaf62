package shared

import (
	"math"
	"strings"
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order sorts by one property
type Order struct {
	Property  string
	Direction Direction
}

// Pageable describes the requested slice of a result set.
// Page is zero based.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// DefaultPageable returns the first page with the default size
func DefaultPageable() Pageable {
	return Pageable{Page: 0, Size: DefaultPageSize}
}

// Offset returns the row offset of the page. It saturates at math.MaxInt
// instead of wrapping, so a far page reads past the last row.
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Normalize clamps page and size into the accepted range
func (p Pageable) Normalize(maxSize int) Pageable {
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if maxPage := math.MaxInt / p.Size; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// ParseOrder parses a "property,direction" sort expression.
// The direction defaults to ascending.
func ParseOrder(expr string) (Order, bool) {
	parts := strings.Split(expr, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" {
		return Order{}, false
	}
	order := Order{Property: property, Direction: Asc}
	if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), string(Desc)) {
		order.Direction = Desc
	}
	return order, true
}

// Page is one page of a result set
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

// NewPage creates a page for the given request
func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        pageable.Page,
		Size:          pageable.Size,
		TotalElements: total,
	}
}

// TotalPages returns the number of pages
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	pages := int(p.TotalElements) / p.Size
	if int(p.TotalElements)%p.Size > 0 {
		pages++
	}
	return pages
}

// HasNext reports whether a page follows this one
func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

// HasPrevious reports whether a page precedes this one
func (p Page[T]) HasPrevious() bool {
	return p.Number > 0
}
