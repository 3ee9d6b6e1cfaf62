package persistence

import (
	"strings"

	"github.com/ak/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortColumns maps API property names to sortable columns of one table
type SortColumns map[string]string

// ValidateSortField resolves a property against the whitelist.
// Unknown properties, including injection attempts, resolve to "".
func ValidateSortField(property string, columns SortColumns) string {
	return columns[strings.TrimSpace(property)]
}

// ResolveOrders converts the requested orders into ORDER BY columns.
// Unknown properties are dropped. The primary key is appended as a tie
// breaker so that pages are stable.
func ResolveOrders(orders []shared.Order, columns SortColumns) []clause.OrderByColumn {
	out := make([]clause.OrderByColumn, 0, len(orders)+1)
	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		name := ValidateSortField(o.Property, columns)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: name},
			Desc:   o.Direction == shared.Desc,
		})
	}
	if !seen["id"] {
		out = append(out, clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})
	}
	return out
}

// paginate applies ordering, offset and limit of the pageable
func paginate(db *gorm.DB, pageable shared.Pageable, columns SortColumns) *gorm.DB {
	for _, order := range ResolveOrders(pageable.Sort, columns) {
		db = db.Order(order)
	}
	if pageable.Size > 0 {
		db = db.Offset(pageable.Offset()).Limit(pageable.Size)
	}
	return db
}

// Sortable properties per table
var (
	CustomerSortColumns = SortColumns{
		"id":          "id",
		"code":        "code",
		"name":        "name",
		"companyName": "company_name",
		"contactName": "contact_name",
		"phone":       "phone",
		"email":       "email",
		"taxId":       "tax_id",
		"creditLimit": "credit_limit",
		"isActive":    "is_active",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	}

	ItemGroupSortColumns = SortColumns{
		"id":          "id",
		"code":        "code",
		"name":        "name",
		"description": "description",
		"isActive":    "is_active",
	}

	ItemSortColumns = SortColumns{
		"id":          "id",
		"code":        "code",
		"name":        "name",
		"description": "description",
		"isActive":    "is_active",
		"itemGroupId": "item_group_id",
		"unitId":      "unit_id",
	}

	UnitSortColumns = SortColumns{
		"id":          "id",
		"name":        "name",
		"description": "description",
		"isActive":    "is_active",
	}

	UserSortColumns = SortColumns{
		"id":        "id",
		"login":     "login",
		"firstName": "first_name",
		"lastName":  "last_name",
		"email":     "email",
		"activated": "activated",
		"langKey":   "lang_key",
		"createdAt": "created_at",
	}
)
