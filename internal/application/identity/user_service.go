package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/cache"
	"github.com/ak/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UserService is the user management used by administrators.
// Administrators only see and manage the users of their own company.
type UserService struct {
	userRepo  identity.UserRepository
	users     cache.UserCache
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new UserService. tokenTTL bounds how long the
// tokens of a deleted user stay revoked.
func NewUserService(
	userRepo identity.UserRepository,
	users cache.UserCache,
	blacklist auth.TokenBlacklist,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:  userRepo,
		users:     users,
		blacklist: blacklist,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// ErrLoginExists is returned when the login is taken
func ErrLoginExists() *shared.AlertError {
	return shared.NewAlertError("Login name already used!", UserEntityName, shared.ErrorKeyUserExists)
}

// ErrEmailExists is returned when the email is taken
func ErrEmailExists() *shared.AlertError {
	return shared.NewAlertError("Email is already in use!", UserEntityName, shared.ErrorKeyEmailExists)
}

// Create adds a user to the administrator's company
func (s *UserService) Create(ctx context.Context, tc shared.TenantContext, req UserRequest) (*UserDTO, error) {
	if err := requireAdmin(tc); err != nil {
		return nil, err
	}
	logger.WithLogger(ctx, s.logger).Debug("Request to save User", zap.String("user_login", req.Login))
	if req.ID != nil {
		return nil, shared.ErrIDExists(UserEntityName)
	}
	if err := s.checkUnique(ctx, 0, req.Login, req.Email); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(tc.CompanyID, req.Login, req.options()...)
	if err != nil {
		return nil, err
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.WithLogger(ctx, s.logger).Info("User created", zap.String("user_login", user.Login))
	dto := ToUserDTO(user)
	return &dto, nil
}

// Update replaces a user of the administrator's company
func (s *UserService) Update(ctx context.Context, tc shared.TenantContext, req UserRequest) (*UserDTO, error) {
	if err := requireAdmin(tc); err != nil {
		return nil, err
	}
	if req.ID == nil {
		return nil, shared.ErrIDNull(UserEntityName)
	}
	if err := s.checkUnique(ctx, *req.ID, req.Login, req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, tc.CompanyID, *req.ID)
	if err != nil {
		return nil, err
	}
	previousLogin := user.Login

	if err := user.Update(req.Login, req.options()...); err != nil {
		return nil, err
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	user.CompanyID = tc.CompanyID
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.evict(ctx, previousLogin, user.Login)
	if !user.Activated {
		s.revokeTokens(ctx, user.Login)
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// GetByLogin returns a user of the caller's company
func (s *UserService) GetByLogin(ctx context.Context, tc shared.TenantContext, login string) (*UserDTO, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != tc.CompanyID {
		return nil, shared.ErrNotFound
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// List returns one page of the caller's company users
func (s *UserService) List(ctx context.Context, tc shared.TenantContext, pageable shared.Pageable) (shared.Page[UserDTO], error) {
	if err := requireAdmin(tc); err != nil {
		return shared.Page[UserDTO]{}, err
	}
	users, total, err := s.userRepo.FindAllByCompany(ctx, tc.CompanyID, pageable)
	if err != nil {
		return shared.Page[UserDTO]{}, err
	}
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = ToUserDTO(&users[i])
	}
	return shared.NewPage(dtos, pageable, total), nil
}

// Delete removes a user of the administrator's company and revokes its tokens
func (s *UserService) Delete(ctx context.Context, tc shared.TenantContext, login string) error {
	if err := requireAdmin(tc); err != nil {
		return err
	}
	logger.WithLogger(ctx, s.logger).Debug("Request to delete User", zap.String("user_login", login))
	if err := s.userRepo.DeleteByLogin(ctx, tc.CompanyID, login); err != nil {
		return err
	}
	s.evict(ctx, login)
	s.revokeTokens(ctx, login)
	return nil
}

// Authorities lists every stored authority
func (s *UserService) Authorities(ctx context.Context) ([]string, error) {
	return s.userRepo.FindAuthorities(ctx)
}

// checkUnique rejects a login or email held by a user other than selfID.
// Logins and emails are unique across all companies.
func (s *UserService) checkUnique(ctx context.Context, selfID int64, login, email string) error {
	login = strings.ToLower(strings.TrimSpace(login))
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.userRepo.FindByLogin(ctx, login)
	switch {
	case err == nil && existing.ID != selfID:
		return ErrLoginExists()
	case err != nil && !errors.Is(err, shared.ErrNotFound):
		return err
	}
	if email == "" {
		return nil
	}
	existing, err = s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return ErrEmailExists()
	case err != nil && !errors.Is(err, shared.ErrNotFound):
		return err
	}
	return nil
}

func (s *UserService) evict(ctx context.Context, logins ...string) {
	for _, login := range logins {
		if err := s.users.Evict(ctx, login); err != nil {
			logger.WithLogger(ctx, s.logger).Warn("user cache eviction failed",
				zap.String("user_login", login), zap.Error(err))
		}
	}
}

func (s *UserService) revokeTokens(ctx context.Context, login string) {
	if err := s.blacklist.RevokeLogin(ctx, login, s.tokenTTL); err != nil {
		logger.WithLogger(ctx, s.logger).Error("failed to revoke user tokens",
			zap.String("user_login", login), zap.Error(err))
	}
}

func requireAdmin(tc shared.TenantContext) error {
	if !tc.Valid() {
		return shared.ErrNoTenant
	}
	if !tc.Admin {
		return shared.ErrForbidden
	}
	return nil
}
