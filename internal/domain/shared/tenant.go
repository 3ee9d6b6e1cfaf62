package shared

import "strconv"

// TenantContext identifies the acting user and the company every read and
// write is scoped to. It is resolved once per request and passed explicitly.
type TenantContext struct {
	UserID    int64
	Login     string
	CompanyID int64
	Admin     bool
}

// Valid reports whether the context carries a company
func (t TenantContext) Valid() bool {
	return t.CompanyID != 0 && t.Login != ""
}

// CompanyKey returns the company id formatted for logs and cache keys
func (t TenantContext) CompanyKey() string {
	return strconv.FormatInt(t.CompanyID, 10)
}
