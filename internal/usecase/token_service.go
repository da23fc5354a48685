package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes the purpose of a signed token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
	TokenTypeClaim   TokenType = "claim"
)

// Default lifetimes used when the config leaves them empty
const (
	DefaultAccessTTL  = 7 * 24 * time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
	DefaultClaimTTL   = 72 * time.Hour
)

// Claims carried by every token
type Claims struct {
	UserID int64     `json:"userId"`
	Email  string    `json:"email"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenConfig holds signing settings
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ClaimTTL   time.Duration
}

// TokenService issues and verifies HS256 tokens. Tokens are never stored
// server side, so an issued token stays valid until it expires.
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

func NewTokenService(config TokenConfig) *TokenService {
	if config.AccessTTL <= 0 {
		config.AccessTTL = DefaultAccessTTL
	}
	if config.RefreshTTL <= 0 {
		config.RefreshTTL = DefaultRefreshTTL
	}
	if config.ClaimTTL <= 0 {
		config.ClaimTTL = DefaultClaimTTL
	}
	return &TokenService{config: config, now: time.Now}
}

// IssuePair creates a new access/refresh pair for the user
func (s *TokenService) IssuePair(user *model.User) (*entity.TokenPair, error) {
	access, accessExp, err := s.sign(user, TokenTypeAccess, s.config.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.sign(user, TokenTypeRefresh, s.config.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &entity.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        "Bearer",
		ExpiresAt:        accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// IssueClaimToken creates the one-off token mailed to checkout-provisioned accounts
func (s *TokenService) IssueClaimToken(user *model.User) (string, time.Time, error) {
	return s.sign(user, TokenTypeClaim, s.config.ClaimTTL)
}

func (s *TokenService) sign(user *model.User, typ TokenType, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, issuer, expiry and token type
func (s *TokenService) Parse(tokenString string, expected TokenType) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, errors.Join(domainErrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Type != expected || claims.UserID == 0 {
		return nil, domainErrors.ErrInvalidToken
	}
	return claims, nil
}
