package partner

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ak/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Field limits for customers
const (
	CustomerCodeMaxLength        = 50
	CustomerNameMaxLength        = 200
	CustomerCompanyNameMaxLength = 200
	CustomerContactMaxLength     = 100
	CustomerPhoneMaxLength       = 50
	CustomerEmailMaxLength       = 200
	CustomerAddressMaxLength     = 500
	CustomerTaxIDMaxLength       = 50
	CustomerNotesMaxLength       = 2000
)

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Customer is a trading partner of a company.
// CompanyName is the registered name of the customer's business and is the
// field matched by free text search.
type Customer struct {
	shared.TenantEntity
	Code        string
	Name        string
	CompanyName string
	ContactName string
	Phone       string
	Email       string
	Address     string
	TaxID       string
	CreditLimit decimal.Decimal
	Notes       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CustomerOption configures a Customer
type CustomerOption func(*Customer)

// WithCustomerID sets the identity
func WithCustomerID(id int64) CustomerOption {
	return func(c *Customer) {
		c.ID = id
	}
}

// WithCustomerCode sets the customer code
func WithCustomerCode(code string) CustomerOption {
	return func(c *Customer) {
		c.Code = shared.NormalizeText(code)
	}
}

// WithCompanyName sets the registered business name
func WithCompanyName(companyName string) CustomerOption {
	return func(c *Customer) {
		c.CompanyName = shared.NormalizeText(companyName)
	}
}

// WithContact sets the contact person and channels
func WithContact(contactName, phone, email string) CustomerOption {
	return func(c *Customer) {
		c.ContactName = shared.NormalizeText(contactName)
		c.Phone = shared.NormalizeText(phone)
		c.Email = shared.NormalizeText(email)
	}
}

// WithAddress sets the postal address
func WithAddress(address string) CustomerOption {
	return func(c *Customer) {
		c.Address = shared.NormalizeText(address)
	}
}

// WithTaxID sets the tax identification number
func WithTaxID(taxID string) CustomerOption {
	return func(c *Customer) {
		c.TaxID = shared.NormalizeText(taxID)
	}
}

// WithCreditLimit sets the credit limit
func WithCreditLimit(limit decimal.Decimal) CustomerOption {
	return func(c *Customer) {
		c.CreditLimit = limit
	}
}

// WithNotes sets free form notes
func WithNotes(notes string) CustomerOption {
	return func(c *Customer) {
		c.Notes = notes
	}
}

// WithCustomerActive sets the active flag
func WithCustomerActive(active bool) CustomerOption {
	return func(c *Customer) {
		c.IsActive = active
	}
}

// WithTimestamps restores audit timestamps of a stored customer
func WithTimestamps(createdAt, updatedAt time.Time) CustomerOption {
	return func(c *Customer) {
		c.CreatedAt = createdAt
		c.UpdatedAt = updatedAt
	}
}

// NewCustomer creates a validated customer owned by companyID
func NewCustomer(companyID int64, name string, opts ...CustomerOption) (*Customer, error) {
	c := &Customer{
		Name:        shared.NormalizeText(name),
		CreditLimit: decimal.Zero,
		IsActive:    true,
	}
	c.CompanyID = companyID
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the name and applies the given options
func (c *Customer) Update(name string, opts ...CustomerOption) error {
	next := *c
	next.Name = shared.NormalizeText(name)
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*c = next
	return nil
}

// Validate checks the field constraints
func (c *Customer) Validate() error {
	checks := []struct {
		code, label, value string
		max                int
		required           bool
	}{
		{"INVALID_NAME", "Customer name", c.Name, CustomerNameMaxLength, true},
		{"INVALID_CODE", "Customer code", c.Code, CustomerCodeMaxLength, false},
		{"INVALID_COMPANY_NAME", "Company name", c.CompanyName, CustomerCompanyNameMaxLength, false},
		{"INVALID_CONTACT", "Contact name", c.ContactName, CustomerContactMaxLength, false},
		{"INVALID_ADDRESS", "Address", c.Address, CustomerAddressMaxLength, false},
		{"INVALID_TAX_ID", "Tax ID", c.TaxID, CustomerTaxIDMaxLength, false},
		{"INVALID_NOTES", "Notes", c.Notes, CustomerNotesMaxLength, false},
	}
	for _, check := range checks {
		if err := shared.ValidateText(check.code, check.label, check.value, check.max, check.required); err != nil {
			return err
		}
	}
	if c.Phone != "" {
		if err := validatePhone(c.Phone); err != nil {
			return err
		}
	}
	if c.Email != "" {
		if err := validateEmail(c.Email); err != nil {
			return err
		}
	}
	if c.CreditLimit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	return nil
}

// Equal compares by identity only. Two distinct unsaved customers are never equal.
func (c *Customer) Equal(other *Customer) bool {
	if c == nil || other == nil {
		return false
	}
	if c == other {
		return true
	}
	return shared.SameIdentity(c.ID, other.ID)
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer{id=%d, companyId=%d, code='%s', name='%s', companyName='%s', contactName='%s', "+
		"phone='%s', email='%s', address='%s', taxId='%s', creditLimit=%s, isActive='%t'}",
		c.ID, c.CompanyID, c.Code, c.Name, c.CompanyName, c.ContactName,
		c.Phone, c.Email, c.Address, c.TaxID, c.CreditLimit.String(), c.IsActive)
}

func validatePhone(phone string) error {
	if len(phone) > CustomerPhoneMaxLength {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > CustomerEmailMaxLength {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
