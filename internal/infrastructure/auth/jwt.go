package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingCompany   = errors.New("missing company_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims are the claims of an access token. The subject is the user login
// and "auth" holds the granted authorities separated by commas.
type Claims struct {
	jwt.RegisteredClaims
	Auth      string `json:"auth"`
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id"`
}

// Login returns the subject of the token
func (c *Claims) Login() string {
	return c.Subject
}

// Authorities splits the auth claim
func (c *Claims) Authorities() []string {
	if c.Auth == "" {
		return nil
	}
	return strings.Split(c.Auth, ",")
}

// HasAuthority checks if the token grants the authority
func (c *Claims) HasAuthority(authority string) bool {
	for _, a := range c.Authorities() {
		if a == authority {
			return true
		}
	}
	return false
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetIssuedAtTime returns the token's issued-at time as time.Time
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// Token is a signed access token
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	UserID      int64
	Login       string
	CompanyID   int64
	Authorities []string
	RememberMe  bool
}

// JWTService issues and validates HS256 access tokens
type JWTService struct {
	secret               []byte
	expiration           time.Duration
	rememberMeExpiration time.Duration
	issuer               string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:               []byte(cfg.Secret),
		expiration:           cfg.AccessTokenExpiration,
		rememberMeExpiration: cfg.RememberMeExpiration,
		issuer:               cfg.Issuer,
	}
}

// GenerateToken signs an access token for the user
func (s *JWTService) GenerateToken(input GenerateTokenInput) (*Token, error) {
	now := time.Now()
	validity := s.expiration
	if input.RememberMe && s.rememberMeExpiration > 0 {
		validity = s.rememberMeExpiration
	}
	expiresAt := now.Add(validity)
	jti := uuid.New().String()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   input.Login,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Auth:      strings.Join(input.Authorities, ","),
		UserID:    input.UserID,
		CompanyID: input.CompanyID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Token{Value: signed, ID: jti, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidClaims
	}
	if claims.CompanyID == 0 {
		return nil, ErrMissingCompany
	}
	return claims, nil
}

// GetAccessTokenExpiration returns the default token lifetime
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.expiration
}

// CompanyKey formats the company claim for logs
func (c *Claims) CompanyKey() string {
	return strconv.FormatInt(c.CompanyID, 10)
}
