package identity

import (
	"context"
	"errors"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/cache"
	"github.com/ak/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CurrentUserResolver turns validated token claims into the tenant context
// of the request. Users are read through the user cache.
type CurrentUserResolver struct {
	userRepo  identity.UserRepository
	users     cache.UserCache
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewCurrentUserResolver creates a new CurrentUserResolver
func NewCurrentUserResolver(userRepo identity.UserRepository, users cache.UserCache, blacklist auth.TokenBlacklist, log *zap.Logger) *CurrentUserResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &CurrentUserResolver{userRepo: userRepo, users: users, blacklist: blacklist, logger: log}
}

// Resolve returns the tenant context of the token's user. Revoked tokens,
// unknown or deactivated users and users moved to another company since the
// token was issued are rejected with shared.ErrUnauthorized.
func (r *CurrentUserResolver) Resolve(ctx context.Context, claims *auth.Claims) (shared.TenantContext, error) {
	if claims == nil {
		return shared.TenantContext{}, shared.ErrUnauthorized
	}
	if err := r.checkRevoked(ctx, claims); err != nil {
		return shared.TenantContext{}, err
	}

	user, err := r.load(ctx, claims.Login())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.TenantContext{}, shared.ErrUnauthorized
		}
		return shared.TenantContext{}, err
	}
	if !user.Activated || user.CompanyID != claims.CompanyID {
		return shared.TenantContext{}, shared.ErrUnauthorized
	}

	tc := user.Tenant()
	if !tc.Valid() {
		return shared.TenantContext{}, shared.ErrNoTenant
	}
	return tc, nil
}

func (r *CurrentUserResolver) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := r.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = r.blacklist.IsLoginRevoked(ctx, claims.Login(), claims.GetIssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return shared.ErrUnauthorized
	}
	return nil
}

func (r *CurrentUserResolver) load(ctx context.Context, login string) (*identity.User, error) {
	if user, ok, err := r.users.Get(ctx, login); err == nil && ok {
		return user, nil
	} else if err != nil {
		logger.WithLogger(ctx, r.logger).Warn("user cache read failed", zap.Error(err))
	}

	user, err := r.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if err := r.users.Set(ctx, user); err != nil {
		logger.WithLogger(ctx, r.logger).Warn("user cache write failed", zap.Error(err))
	}
	return user, nil
}
