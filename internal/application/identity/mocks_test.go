package identity

import (
	"context"
	"testing"
	"time"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*identity.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, companyID, id int64) (*identity.User, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllByCompany(ctx context.Context, companyID int64, pageable shared.Pageable) ([]identity.User, int64, error) {
	args := m.Called(ctx, companyID, pageable)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) DeleteByLogin(ctx context.Context, companyID int64, login string) error {
	return m.Called(ctx, companyID, login).Error(0)
}

func (m *MockUserRepository) FindAuthorities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

var (
	adminTenant = shared.TenantContext{UserID: 1, Login: "admin", CompanyID: 5, Admin: true}
	userTenant  = shared.TenantContext{UserID: 2, Login: "user", CompanyID: 5}
)

func init() {
	identity.PasswordCost = bcrypt.MinCost
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		RememberMeExpiration:  24 * time.Hour,
		Issuer:                "test-issuer",
	})
}

// newStoredUser builds an activated user with the given password
func newStoredUser(t *testing.T, id, companyID int64, login, password string, authorities ...string) *identity.User {
	t.Helper()
	opts := []identity.UserOption{
		identity.WithUserID(id),
		identity.WithActivated(true),
		identity.WithEmail(login + "@example.com"),
	}
	if len(authorities) > 0 {
		opts = append(opts, identity.WithAuthorities(authorities...))
	}
	u, err := identity.NewUser(companyID, login, opts...)
	require.NoError(t, err)
	if password != "" {
		require.NoError(t, u.SetPassword(password))
	}
	return u
}
