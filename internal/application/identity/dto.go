package identity

import (
	"time"

	"github.com/ak/backend/internal/domain/identity"
)

// UserEntityName names users in alert headers and error bodies
const UserEntityName = "userManagement"

// LoginInput contains input for authentication
type LoginInput struct {
	Username   string `json:"username" binding:"required,max=50"`
	Password   string `json:"password" binding:"required,max=100"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResult is a signed access token for the authenticated user
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserDTO
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Activated   bool      `json:"activated"`
	LangKey     string    `json:"langKey"`
	CompanyID   int64     `json:"companyId"`
	Authorities []string  `json:"authorities"`
	CreatedAt   time.Time `json:"createdDate"`
	UpdatedAt   time.Time `json:"lastModifiedDate"`
}

// ToUserDTO converts a domain user. The password hash is never exposed.
func ToUserDTO(u *identity.User) UserDTO {
	authorities := u.Authorities
	if authorities == nil {
		authorities = []string{}
	}
	return UserDTO{
		ID:          u.ID,
		Login:       u.Login,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Activated:   u.Activated,
		LangKey:     u.LangKey,
		CompanyID:   u.CompanyID,
		Authorities: authorities,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserRequest is the body of POST and PUT /api/users.
// Password is optional; a user without password cannot sign in.
type UserRequest struct {
	ID          *int64   `json:"id"`
	Login       string   `json:"login" binding:"required,max=50"`
	FirstName   string   `json:"firstName" binding:"max=50"`
	LastName    string   `json:"lastName" binding:"max=50"`
	Email       string   `json:"email" binding:"omitempty,email,max=254"`
	Activated   bool     `json:"activated"`
	LangKey     string   `json:"langKey" binding:"max=10"`
	Authorities []string `json:"authorities"`
	Password    string   `json:"password,omitempty" binding:"omitempty,min=4,max=100"`
	CompanyID   *int64   `json:"companyId"`
}

func (r UserRequest) options() []identity.UserOption {
	opts := []identity.UserOption{
		identity.WithNames(r.FirstName, r.LastName),
		identity.WithEmail(r.Email),
		identity.WithActivated(r.Activated),
		identity.WithLangKey(r.LangKey),
	}
	if len(r.Authorities) > 0 {
		opts = append(opts, identity.WithAuthorities(r.Authorities...))
	}
	return opts
}

// AccountRequest is the body of POST /api/account
type AccountRequest struct {
	FirstName string `json:"firstName" binding:"max=50"`
	LastName  string `json:"lastName" binding:"max=50"`
	Email     string `json:"email" binding:"omitempty,email,max=254"`
	LangKey   string `json:"langKey" binding:"max=10"`
}

// PasswordChangeRequest is the body of POST /api/account/change-password
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=4,max=100"`
}
