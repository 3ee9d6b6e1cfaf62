package models

import (
	"time"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Login        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(60);not null"`
	FirstName    string    `gorm:"type:varchar(50)"`
	LastName     string    `gorm:"type:varchar(50)"`
	Email        *string   `gorm:"type:varchar(254);uniqueIndex"`
	Activated    bool      `gorm:"not null;default:false"`
	LangKey      string    `gorm:"type:varchar(10)"`
	CompanyID    int64     `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "jhi_user"
}

// ToDomain converts the persistence model to a domain User entity.
// Authorities are loaded separately by the repository.
func (m *UserModel) ToDomain(authorities []string) *identity.User {
	email := ""
	if m.Email != nil {
		email = *m.Email
	}
	return &identity.User{
		BaseEntity:   shared.BaseEntity{ID: m.ID},
		Login:        m.Login,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        email,
		Activated:    m.Activated,
		LangKey:      m.LangKey,
		CompanyID:    m.CompanyID,
		Authorities:  authorities,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
// An empty email is stored as NULL so that the unique index ignores it.
func (m *UserModel) FromDomain(u *identity.User) {
	m.ID = u.ID
	m.Login = u.Login
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Email = nil
	if u.Email != "" {
		email := u.Email
		m.Email = &email
	}
	m.Activated = u.Activated
	m.LangKey = u.LangKey
	m.CompanyID = u.CompanyID
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// AuthorityModel is a named authority (ROLE_ADMIN, ROLE_USER)
type AuthorityModel struct {
	Name string `gorm:"type:varchar(50);primaryKey"`
}

// TableName returns the table name for GORM
func (AuthorityModel) TableName() string {
	return "jhi_authority"
}

// UserAuthorityModel links a user to one authority
type UserAuthorityModel struct {
	UserID        int64  `gorm:"primaryKey"`
	AuthorityName string `gorm:"type:varchar(50);primaryKey"`
}

// TableName returns the table name for GORM
func (UserAuthorityModel) TableName() string {
	return "jhi_user_authority"
}
