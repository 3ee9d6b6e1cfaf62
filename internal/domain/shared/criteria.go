package shared

import "github.com/shopspring/decimal"

// LongFilter filters an integer attribute
type LongFilter struct {
	Equals             *int64
	NotEquals          *int64
	In                 []int64
	NotIn              []int64
	GreaterThan        *int64
	LessThan           *int64
	GreaterThanOrEqual *int64
	LessThanOrEqual    *int64
	Specified          *bool
}

// LongEquals returns a filter matching exactly v
func LongEquals(v int64) *LongFilter {
	return &LongFilter{Equals: &v}
}

// IsEmpty reports whether the filter constrains nothing
func (f *LongFilter) IsEmpty() bool {
	return f == nil || (f.Equals == nil && f.NotEquals == nil && len(f.In) == 0 && len(f.NotIn) == 0 &&
		f.GreaterThan == nil && f.LessThan == nil && f.GreaterThanOrEqual == nil &&
		f.LessThanOrEqual == nil && f.Specified == nil)
}

// StringFilter filters a text attribute. Contains and DoesNotContain are
// case insensitive.
type StringFilter struct {
	Equals         *string
	NotEquals      *string
	In             []string
	NotIn          []string
	Contains       *string
	DoesNotContain *string
	Specified      *bool
}

// StringContains returns a filter matching values containing v
func StringContains(v string) *StringFilter {
	return &StringFilter{Contains: &v}
}

// IsEmpty reports whether the filter constrains nothing
func (f *StringFilter) IsEmpty() bool {
	return f == nil || (f.Equals == nil && f.NotEquals == nil && len(f.In) == 0 && len(f.NotIn) == 0 &&
		f.Contains == nil && f.DoesNotContain == nil && f.Specified == nil)
}

// BooleanFilter filters a flag attribute
type BooleanFilter struct {
	Equals    *bool
	NotEquals *bool
	Specified *bool
}

// IsEmpty reports whether the filter constrains nothing
func (f *BooleanFilter) IsEmpty() bool {
	return f == nil || (f.Equals == nil && f.NotEquals == nil && f.Specified == nil)
}

// DecimalFilter filters a numeric attribute stored as decimal
type DecimalFilter struct {
	Equals             *decimal.Decimal
	NotEquals          *decimal.Decimal
	GreaterThan        *decimal.Decimal
	LessThan           *decimal.Decimal
	GreaterThanOrEqual *decimal.Decimal
	LessThanOrEqual    *decimal.Decimal
	Specified          *bool
}

// IsEmpty reports whether the filter constrains nothing
func (f *DecimalFilter) IsEmpty() bool {
	return f == nil || (f.Equals == nil && f.NotEquals == nil && f.GreaterThan == nil && f.LessThan == nil &&
		f.GreaterThanOrEqual == nil && f.LessThanOrEqual == nil && f.Specified == nil)
}
