package shared

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() int64
	IsNew() bool
}

// BaseEntity carries the database generated identity.
// A zero ID means the entity has not been persisted yet.
type BaseEntity struct {
	ID int64
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// IsNew reports whether the entity has no identity yet
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}

// SameIdentity compares two identities. Unsaved entities (zero id) are never
// equal to anything, including another unsaved entity.
func SameIdentity(a, b int64) bool {
	return a != 0 && a == b
}

// TenantEntity is an entity owned by a company
type TenantEntity struct {
	BaseEntity
	CompanyID int64
}

// AssignCompany stamps the owning company. The caller's company always wins
// over any value carried by the request.
func (e *TenantEntity) AssignCompany(companyID int64) {
	e.CompanyID = companyID
}

// BelongsTo reports whether the entity is owned by the given company
func (e *TenantEntity) BelongsTo(companyID int64) bool {
	return companyID != 0 && e.CompanyID == companyID
}
