package identity

import (
	"context"
	"errors"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Authentication errors. Both map to 401.
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrUserNotActivated   = shared.NewDomainError("USER_NOT_ACTIVATED", "User account is not activated")
)

// AuthService signs users in and out
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Authenticate checks the credentials and issues an access token
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*LoginResult, error) {
	log := logger.WithLogger(ctx, s.logger).With(zap.String("login", input.Username))
	log.Debug("Authentication attempt")

	user, err := s.userRepo.FindByLogin(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Authentication failed: unknown login")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		log.Warn("Authentication failed: bad password")
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		log.Warn("Authentication failed: user not activated")
		return nil, ErrUserNotActivated
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:      user.ID,
		Login:       user.Login,
		CompanyID:   user.CompanyID,
		Authorities: user.Authorities,
		RememberMe:  input.RememberMe,
	})
	if err != nil {
		return nil, err
	}

	log.Info("User authenticated", zap.Int64("company_id", user.CompanyID))
	return &LoginResult{Token: token.Value, ExpiresAt: token.ExpiresAt, User: ToUserDTO(user)}, nil
}

// Logout revokes the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	logger.WithLogger(ctx, s.logger).Info("User logged out", zap.String("login", claims.Login()))
	return nil
}
