// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Every model declares its table with TableName and converts explicitly with
// ToDomain and FromDomain. Repositories never hand domain entities to GORM.
//
// Structure:
// - base.go: TenantModel shared by company owned tables
// - catalog.go: item_group, item, unit
// - partner.go: customer
// - identity.go: jhi_user, jhi_authority, jhi_user_authority
package models
