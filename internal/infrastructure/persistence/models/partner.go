package models

import (
	"time"

	"github.com/ak/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantModel
	Code        string          `gorm:"type:varchar(50);index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	CompanyName string          `gorm:"type:varchar(200)"`
	ContactName string          `gorm:"type:varchar(100)"`
	Phone       string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200)"`
	Address     string          `gorm:"type:varchar(500)"`
	TaxID       string          `gorm:"type:varchar(50)"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string          `gorm:"type:text"`
	IsActive    bool            `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customer"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantEntity: m.TenantModel.ToDomain(),
		Code:         m.Code,
		Name:         m.Name,
		CompanyName:  m.CompanyName,
		ContactName:  m.ContactName,
		Phone:        m.Phone,
		Email:        m.Email,
		Address:      m.Address,
		TaxID:        m.TaxID,
		CreditLimit:  m.CreditLimit,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantEntity(c.TenantEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.CompanyName = c.CompanyName
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.TaxID = c.TaxID
	m.CreditLimit = c.CreditLimit
	m.Notes = c.Notes
	m.IsActive = c.IsActive
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
