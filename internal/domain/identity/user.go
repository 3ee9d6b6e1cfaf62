package identity

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ak/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Authorities known to the application
const (
	AuthorityAdmin = "ROLE_ADMIN"
	AuthorityUser  = "ROLE_USER"
)

// Field limits for users
const (
	LoginMaxLength    = 50
	NameMaxLength     = 50
	EmailMaxLength    = 254
	PasswordMinLength = 4
	PasswordMaxLength = 100
	DefaultLangKey    = "en"
)

// PasswordCost is the bcrypt cost used for new password hashes
var PasswordCost = bcrypt.DefaultCost

var (
	loginPattern = regexp.MustCompile(`^[_.@A-Za-z0-9-]*$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is an account that can sign in. Every user belongs to exactly one
// company, which scopes all the data the user can see.
type User struct {
	shared.BaseEntity
	Login        string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Activated    bool
	LangKey      string
	CompanyID    int64
	Authorities  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption configures a User
type UserOption func(*User)

// WithUserID sets the identity
func WithUserID(id int64) UserOption {
	return func(u *User) {
		u.ID = id
	}
}

// WithNames sets first and last name
func WithNames(firstName, lastName string) UserOption {
	return func(u *User) {
		u.FirstName = shared.NormalizeText(firstName)
		u.LastName = shared.NormalizeText(lastName)
	}
}

// WithEmail sets the email address, stored lowercase
func WithEmail(email string) UserOption {
	return func(u *User) {
		u.Email = strings.ToLower(shared.NormalizeText(email))
	}
}

// WithActivated sets the activation flag
func WithActivated(activated bool) UserOption {
	return func(u *User) {
		u.Activated = activated
	}
}

// WithLangKey sets the preferred language
func WithLangKey(langKey string) UserOption {
	return func(u *User) {
		if langKey != "" {
			u.LangKey = langKey
		}
	}
}

// WithAuthorities replaces the granted authorities
func WithAuthorities(authorities ...string) UserOption {
	return func(u *User) {
		u.Authorities = normalizeAuthorities(authorities)
	}
}

// WithPasswordHash restores the stored hash
func WithPasswordHash(hash string) UserOption {
	return func(u *User) {
		u.PasswordHash = hash
	}
}

// NewUser creates a validated user of the given company
func NewUser(companyID int64, login string, opts ...UserOption) (*User, error) {
	u := &User{
		Login:       strings.ToLower(strings.TrimSpace(login)),
		CompanyID:   companyID,
		LangKey:     DefaultLangKey,
		Authorities: []string{AuthorityUser},
	}
	for _, opt := range opts {
		opt(u)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies the options after validating the result
func (u *User) Update(login string, opts ...UserOption) error {
	next := *u
	next.Login = strings.ToLower(strings.TrimSpace(login))
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*u = next
	return nil
}

// Validate checks the field constraints
func (u *User) Validate() error {
	if u.Login == "" {
		return shared.NewDomainError("INVALID_LOGIN", "Login cannot be empty")
	}
	if len(u.Login) > LoginMaxLength {
		return shared.NewDomainError("INVALID_LOGIN", fmt.Sprintf("Login cannot exceed %d characters", LoginMaxLength))
	}
	if !loginPattern.MatchString(u.Login) {
		return shared.NewDomainError("INVALID_LOGIN", "Login can only contain letters, numbers and _ . @ -")
	}
	if err := shared.ValidateText("INVALID_NAME", "First name", u.FirstName, NameMaxLength, false); err != nil {
		return err
	}
	if err := shared.ValidateText("INVALID_NAME", "Last name", u.LastName, NameMaxLength, false); err != nil {
		return err
	}
	if u.Email != "" {
		if len(u.Email) > EmailMaxLength || !emailPattern.MatchString(u.Email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	if u.CompanyID == 0 {
		return shared.NewDomainError("INVALID_COMPANY", "User must belong to a company")
	}
	for _, a := range u.Authorities {
		if !IsKnownAuthority(a) {
			return shared.NewDomainError("INVALID_AUTHORITY", fmt.Sprintf("Unknown authority %q", a))
		}
	}
	return nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return shared.NewDomainError("INVALID_PASSWORD",
			fmt.Sprintf("Password must be between %d and %d characters", PasswordMinLength, PasswordMaxLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasAuthority reports whether the user was granted the authority
func (u *User) HasAuthority(authority string) bool {
	return slices.Contains(u.Authorities, authority)
}

// IsAdmin reports whether the user holds ROLE_ADMIN
func (u *User) IsAdmin() bool {
	return u.HasAuthority(AuthorityAdmin)
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.Activated && u.PasswordHash != ""
}

// Tenant builds the request tenant context for this user
func (u *User) Tenant() shared.TenantContext {
	return shared.TenantContext{
		UserID:    u.ID,
		Login:     u.Login,
		CompanyID: u.CompanyID,
		Admin:     u.IsAdmin(),
	}
}

func (u *User) String() string {
	return fmt.Sprintf("User{id=%d, login='%s', firstName='%s', lastName='%s', email='%s', activated='%t', langKey='%s', companyId=%d}",
		u.ID, u.Login, u.FirstName, u.LastName, u.Email, u.Activated, u.LangKey, u.CompanyID)
}

// KnownAuthorities lists every grantable authority
func KnownAuthorities() []string {
	return []string{AuthorityAdmin, AuthorityUser}
}

// IsKnownAuthority reports whether the name is a grantable authority
func IsKnownAuthority(name string) bool {
	return slices.Contains(KnownAuthorities(), name)
}

func normalizeAuthorities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" || slices.Contains(out, a) {
			continue
		}
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}
