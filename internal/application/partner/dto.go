package partner

import (
	"time"

	"github.com/ak/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerRequest is the body of POST and PUT /api/customers.
// ID must be absent on create and present on update. CompanyID is accepted
// for compatibility with the web client but always replaced by the caller's
// company.
type CustomerRequest struct {
	ID          *int64           `json:"id"`
	CompanyID   *int64           `json:"companyId"`
	Code        string           `json:"code" binding:"max=50"`
	Name        string           `json:"name" binding:"required,max=200"`
	CompanyName string           `json:"companyName" binding:"max=200"`
	ContactName string           `json:"contactName" binding:"max=100"`
	Phone       string           `json:"phone" binding:"max=50"`
	Email       string           `json:"email" binding:"omitempty,email,max=200"`
	Address     string           `json:"address" binding:"max=500"`
	TaxID       string           `json:"taxId" binding:"max=50"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	Notes       string           `json:"notes" binding:"max=2000"`
	IsActive    *bool            `json:"isActive"`
}

// options maps the request onto customer options
func (r CustomerRequest) options() []partner.CustomerOption {
	opts := []partner.CustomerOption{
		partner.WithCustomerCode(r.Code),
		partner.WithCompanyName(r.CompanyName),
		partner.WithContact(r.ContactName, r.Phone, r.Email),
		partner.WithAddress(r.Address),
		partner.WithTaxID(r.TaxID),
		partner.WithNotes(r.Notes),
	}
	limit := decimal.Zero
	if r.CreditLimit != nil {
		limit = *r.CreditLimit
	}
	opts = append(opts, partner.WithCreditLimit(limit))
	if r.IsActive != nil {
		opts = append(opts, partner.WithCustomerActive(*r.IsActive))
	}
	return opts
}

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID          int64           `json:"id"`
	CompanyID   int64           `json:"companyId"`
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	CompanyName string          `json:"companyName,omitempty"`
	ContactName string          `json:"contactName,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	TaxID       string          `json:"taxId,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	Notes       string          `json:"notes,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToCustomerDTO converts a domain customer to its response form
func ToCustomerDTO(c *partner.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Code:        c.Code,
		Name:        c.Name,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		TaxID:       c.TaxID,
		CreditLimit: c.CreditLimit,
		Notes:       c.Notes,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCustomerDTOs converts a slice of customers
func ToCustomerDTOs(customers []partner.Customer) []CustomerDTO {
	out := make([]CustomerDTO, len(customers))
	for i := range customers {
		out[i] = ToCustomerDTO(&customers[i])
	}
	return out
}
