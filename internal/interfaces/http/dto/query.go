package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Filter operators accepted as "<field>.<operator>=<value>"
const (
	OpEquals             = "equals"
	OpNotEquals          = "notEquals"
	OpIn                 = "in"
	OpNotIn              = "notIn"
	OpContains           = "contains"
	OpDoesNotContain     = "doesNotContain"
	OpGreaterThan        = "greaterThan"
	OpLessThan           = "lessThan"
	OpGreaterThanOrEqual = "greaterThanOrEqual"
	OpLessThanOrEqual    = "lessThanOrEqual"
	OpSpecified          = "specified"
)

// Paging query parameters
const (
	ParamPage  = "page"
	ParamSize  = "size"
	ParamSort  = "sort"
	ParamQuery = "query"
)

// InvalidQueryError lists the query parameters that could not be parsed
type InvalidQueryError struct {
	Params []string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query parameters: %s", strings.Join(e.Params, ", "))
}

// QueryParser reads criteria filters and paging from the query string.
// Parse failures are collected and reported once by Err.
//
//	p := dto.NewQueryParser(c.Request.URL.Query())
//	criteria := partner.CustomerCriteria{ID: p.Long("id"), Name: p.Text("name")}
//	if err := p.Err(); err != nil { ... }
type QueryParser struct {
	values  url.Values
	invalid []string
}

// NewQueryParser creates a parser over the request query
func NewQueryParser(values url.Values) *QueryParser {
	return &QueryParser{values: values}
}

// Err returns an *InvalidQueryError when any parameter was malformed
func (p *QueryParser) Err() error {
	if len(p.invalid) == 0 {
		return nil
	}
	return &InvalidQueryError{Params: p.invalid}
}

func (p *QueryParser) first(field, op string) (string, bool) {
	key := field + "." + op
	vals, ok := p.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// list collects comma separated and repeated values of one operator
func (p *QueryParser) list(field, op string) []string {
	var out []string
	for _, v := range p.values[field+"."+op] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (p *QueryParser) fail(field, op string) {
	p.invalid = append(p.invalid, field+"."+op)
}

func (p *QueryParser) longValue(field, op string) *int64 {
	raw, ok := p.first(field, op)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		p.fail(field, op)
		return nil
	}
	return &v
}

func (p *QueryParser) longValues(field, op string) []int64 {
	parts := p.list(field, op)
	if len(parts) == 0 {
		return nil
	}
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			p.fail(field, op)
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (p *QueryParser) boolValue(field, op string) *bool {
	raw, ok := p.first(field, op)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		p.fail(field, op)
		return nil
	}
	return &v
}

func (p *QueryParser) textValue(field, op string) *string {
	raw, ok := p.first(field, op)
	if !ok {
		return nil
	}
	v := shared.NormalizeText(raw)
	return &v
}

func (p *QueryParser) decimalValue(field, op string) *decimal.Decimal {
	raw, ok := p.first(field, op)
	if !ok {
		return nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		p.fail(field, op)
		return nil
	}
	return &v
}

// Long parses the filter of an integer attribute. It returns nil when the
// query carries no operator for the field.
func (p *QueryParser) Long(field string) *shared.LongFilter {
	f := &shared.LongFilter{
		Equals:             p.longValue(field, OpEquals),
		NotEquals:          p.longValue(field, OpNotEquals),
		In:                 p.longValues(field, OpIn),
		NotIn:              p.longValues(field, OpNotIn),
		GreaterThan:        p.longValue(field, OpGreaterThan),
		LessThan:           p.longValue(field, OpLessThan),
		GreaterThanOrEqual: p.longValue(field, OpGreaterThanOrEqual),
		LessThanOrEqual:    p.longValue(field, OpLessThanOrEqual),
		Specified:          p.boolValue(field, OpSpecified),
	}
	if f.IsEmpty() {
		return nil
	}
	return f
}

// Text parses the filter of a text attribute
func (p *QueryParser) Text(field string) *shared.StringFilter {
	f := &shared.StringFilter{
		Equals:         p.textValue(field, OpEquals),
		NotEquals:      p.textValue(field, OpNotEquals),
		In:             p.list(field, OpIn),
		NotIn:          p.list(field, OpNotIn),
		Contains:       p.textValue(field, OpContains),
		DoesNotContain: p.textValue(field, OpDoesNotContain),
		Specified:      p.boolValue(field, OpSpecified),
	}
	if f.IsEmpty() {
		return nil
	}
	return f
}

// Boolean parses the filter of a flag attribute
func (p *QueryParser) Boolean(field string) *shared.BooleanFilter {
	f := &shared.BooleanFilter{
		Equals:    p.boolValue(field, OpEquals),
		NotEquals: p.boolValue(field, OpNotEquals),
		Specified: p.boolValue(field, OpSpecified),
	}
	if f.IsEmpty() {
		return nil
	}
	return f
}

// Decimal parses the filter of a decimal attribute
func (p *QueryParser) Decimal(field string) *shared.DecimalFilter {
	f := &shared.DecimalFilter{
		Equals:             p.decimalValue(field, OpEquals),
		NotEquals:          p.decimalValue(field, OpNotEquals),
		GreaterThan:        p.decimalValue(field, OpGreaterThan),
		LessThan:           p.decimalValue(field, OpLessThan),
		GreaterThanOrEqual: p.decimalValue(field, OpGreaterThanOrEqual),
		LessThanOrEqual:    p.decimalValue(field, OpLessThanOrEqual),
		Specified:          p.boolValue(field, OpSpecified),
	}
	if f.IsEmpty() {
		return nil
	}
	return f
}

// Pageable parses page, size and the repeatable sort parameter.
// The result is clamped to defaultSize and maxSize.
func (p *QueryParser) Pageable(defaultSize, maxSize int) shared.Pageable {
	pageable := shared.Pageable{Size: defaultSize}
	if raw := p.values.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			p.invalid = append(p.invalid, ParamPage)
		} else {
			pageable.Page = page
		}
	}
	if raw := p.values.Get(ParamSize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			p.invalid = append(p.invalid, ParamSize)
		} else {
			pageable.Size = size
		}
	}
	for _, expr := range p.values[ParamSort] {
		if order, ok := shared.ParseOrder(expr); ok {
			pageable.Sort = append(pageable.Sort, order)
		}
	}
	if pageable.Size <= 0 {
		pageable.Size = defaultSize
	}
	return pageable.Normalize(maxSize)
}

// Query returns the free text search parameter
func (p *QueryParser) Query() string {
	return shared.NormalizeText(p.values.Get(ParamQuery))
}

// RequiredQuery returns the search parameter and records it as invalid
// when the request does not carry it. An empty value is accepted.
func (p *QueryParser) RequiredQuery() string {
	if _, ok := p.values[ParamQuery]; !ok {
		p.invalid = append(p.invalid, ParamQuery)
	}
	return p.Query()
}
