package persistence

import (
	"strings"

	"github.com/ak/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filterQuery accumulates WHERE conditions translated from criteria filters.
// Columns come from the explicit per-entity column tables, never from input.
type filterQuery struct {
	db *gorm.DB
}

func newFilterQuery(db *gorm.DB) *filterQuery {
	return &filterQuery{db: db}
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

func (q *filterQuery) where(expr clause.Expression) {
	q.db = q.db.Where(expr)
}

func (q *filterQuery) specified(name string, specified *bool) {
	if specified == nil {
		return
	}
	sql := "? IS NULL"
	if *specified {
		sql = "? IS NOT NULL"
	}
	q.where(clause.Expr{SQL: sql, Vars: []any{column(name)}})
}

// Long applies a LongFilter to an integer column
func (q *filterQuery) Long(name string, f *shared.LongFilter) *filterQuery {
	if f.IsEmpty() {
		return q
	}
	col := column(name)
	if f.Equals != nil {
		q.where(clause.Eq{Column: col, Value: *f.Equals})
	}
	if f.NotEquals != nil {
		q.where(clause.Neq{Column: col, Value: *f.NotEquals})
	}
	if len(f.In) > 0 {
		q.where(clause.IN{Column: col, Values: toAny(f.In)})
	}
	if len(f.NotIn) > 0 {
		q.where(clause.Not(clause.IN{Column: col, Values: toAny(f.NotIn)}))
	}
	if f.GreaterThan != nil {
		q.where(clause.Gt{Column: col, Value: *f.GreaterThan})
	}
	if f.LessThan != nil {
		q.where(clause.Lt{Column: col, Value: *f.LessThan})
	}
	if f.GreaterThanOrEqual != nil {
		q.where(clause.Gte{Column: col, Value: *f.GreaterThanOrEqual})
	}
	if f.LessThanOrEqual != nil {
		q.where(clause.Lte{Column: col, Value: *f.LessThanOrEqual})
	}
	q.specified(name, f.Specified)
	return q
}

// String applies a StringFilter to a text column. Contains and
// DoesNotContain compare upper-cased values.
func (q *filterQuery) String(name string, f *shared.StringFilter) *filterQuery {
	if f.IsEmpty() {
		return q
	}
	col := column(name)
	if f.Equals != nil {
		q.where(clause.Eq{Column: col, Value: *f.Equals})
	}
	if f.NotEquals != nil {
		q.where(clause.Neq{Column: col, Value: *f.NotEquals})
	}
	if len(f.In) > 0 {
		q.where(clause.IN{Column: col, Values: toAny(f.In)})
	}
	if len(f.NotIn) > 0 {
		q.where(clause.Not(clause.IN{Column: col, Values: toAny(f.NotIn)}))
	}
	if f.Contains != nil {
		q.where(clause.Expr{SQL: "UPPER(?) LIKE ?", Vars: []any{col, likePattern(*f.Contains)}})
	}
	if f.DoesNotContain != nil {
		q.where(clause.Expr{SQL: "UPPER(?) NOT LIKE ?", Vars: []any{col, likePattern(*f.DoesNotContain)}})
	}
	q.specified(name, f.Specified)
	return q
}

// Boolean applies a BooleanFilter to a flag column
func (q *filterQuery) Boolean(name string, f *shared.BooleanFilter) *filterQuery {
	if f.IsEmpty() {
		return q
	}
	col := column(name)
	if f.Equals != nil {
		q.where(clause.Eq{Column: col, Value: *f.Equals})
	}
	if f.NotEquals != nil {
		q.where(clause.Neq{Column: col, Value: *f.NotEquals})
	}
	q.specified(name, f.Specified)
	return q
}

// Decimal applies a DecimalFilter to a numeric column
func (q *filterQuery) Decimal(name string, f *shared.DecimalFilter) *filterQuery {
	if f.IsEmpty() {
		return q
	}
	col := column(name)
	if f.Equals != nil {
		q.where(clause.Eq{Column: col, Value: *f.Equals})
	}
	if f.NotEquals != nil {
		q.where(clause.Neq{Column: col, Value: *f.NotEquals})
	}
	if f.GreaterThan != nil {
		q.where(clause.Gt{Column: col, Value: *f.GreaterThan})
	}
	if f.LessThan != nil {
		q.where(clause.Lt{Column: col, Value: *f.LessThan})
	}
	if f.GreaterThanOrEqual != nil {
		q.where(clause.Gte{Column: col, Value: *f.GreaterThanOrEqual})
	}
	if f.LessThanOrEqual != nil {
		q.where(clause.Lte{Column: col, Value: *f.LessThanOrEqual})
	}
	q.specified(name, f.Specified)
	return q
}

// Related restricts name to the values of a subquery
func (q *filterQuery) Related(name string, subquery *gorm.DB) *filterQuery {
	q.where(clause.Expr{SQL: "? IN (?)", Vars: []any{column(name), subquery}})
	return q
}

// DB returns the filtered statement
func (q *filterQuery) DB() *gorm.DB {
	return q.db
}

func likePattern(v string) string {
	return "%" + strings.ToUpper(shared.NormalizeText(v)) + "%"
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
