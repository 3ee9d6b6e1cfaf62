package identity

import (
	"context"
	"errors"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/cache"
	"github.com/ak/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrInvalidPassword is returned when the current password does not match
var ErrInvalidPassword = shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")

// AccountService lets the signed-in user read and edit its own account
type AccountService struct {
	userRepo identity.UserRepository
	users    cache.UserCache
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo identity.UserRepository, users cache.UserCache, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{userRepo: userRepo, users: users, logger: log}
}

// GetAccount returns the current user
func (s *AccountService) GetAccount(ctx context.Context, tc shared.TenantContext) (*UserDTO, error) {
	user, err := s.current(ctx, tc)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// SaveAccount updates names, email and language of the current user
func (s *AccountService) SaveAccount(ctx context.Context, tc shared.TenantContext, req AccountRequest) (*UserDTO, error) {
	user, err := s.current(ctx, tc)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		existing, err := s.userRepo.FindByEmail(ctx, req.Email)
		if err == nil && existing.ID != user.ID {
			return nil, ErrEmailExists()
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if err := user.Update(user.Login,
		identity.WithNames(req.FirstName, req.LastName),
		identity.WithEmail(req.Email),
		identity.WithLangKey(req.LangKey),
	); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// ChangePassword replaces the password after checking the current one
func (s *AccountService) ChangePassword(ctx context.Context, tc shared.TenantContext, req PasswordChangeRequest) error {
	user, err := s.current(ctx, tc)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return ErrInvalidPassword
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.save(ctx, user); err != nil {
		return err
	}
	logger.WithLogger(ctx, s.logger).Info("Password changed", zap.String("user_login", user.Login))
	return nil
}

// current loads the stored user. The cached copy carries no password hash
// and is not used here.
func (s *AccountService) current(ctx context.Context, tc shared.TenantContext) (*identity.User, error) {
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	return s.userRepo.FindByID(ctx, tc.CompanyID, tc.UserID)
}

func (s *AccountService) save(ctx context.Context, user *identity.User) error {
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	if err := s.users.Evict(ctx, user.Login); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("user cache eviction failed", zap.Error(err))
	}
	return nil
}
