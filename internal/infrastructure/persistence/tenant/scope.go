// Package tenant provides company scoping for GORM queries.
//
// Every company owned table carries a company_id column. Repositories receive
// the caller's company id explicitly and apply CompanyScope to every read,
// update and delete so that rows of other companies behave as absent.
//
// Usage:
//
//	db.WithContext(ctx).Scopes(tenant.CompanyScope(companyID)).Find(&customers)
package tenant

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCompanyRequired is returned when a scoped query is built without a company
var ErrCompanyRequired = errors.New("company_id is required for a scoped query")

// Column is the tenant column of company owned tables
const Column = "company_id"

// CompanyScope restricts a query to one company. A zero company id poisons
// the statement with ErrCompanyRequired instead of widening the query.
func CompanyScope(companyID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == 0 {
			_ = db.AddError(ErrCompanyRequired)
			return db
		}
		return db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: Column}, Value: companyID})
	}
}
