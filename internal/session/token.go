package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token lifetimes. Anonymous visitors get a long-lived token because there
// is no way for them to log back in; authenticated tokens rotate sooner.
const (
	AnonymousTokenTTL = 365 * 24 * time.Hour
	UserTokenTTL      = 30 * 24 * time.Hour
)

var (
	// ErrExpiredToken means the token verified but its expiry has passed.
	ErrExpiredToken = errors.New("token expired")
	// ErrInvalidToken covers every other verification failure: bad
	// signature, malformed structure, missing fields, wrong algorithm.
	ErrInvalidToken = errors.New("invalid token")
	// ErrGenerationFailed means signing or serialization failed.
	ErrGenerationFailed = errors.New("token generation failed")
)

// Claims is the payload of a session token. Exactly one of AnonymousID or
// UserID is set; the token asserts one subject, never both.
type Claims struct {
	AnonymousID string `json:"anonymous_id,omitempty"`
	UserID      *int64 `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// GenerateAnonymousToken mints a token for a brand-new anonymous visitor.
func (tm *TokenManager) GenerateAnonymousToken() (string, *Claims, error) {
	return tm.mintAnonymous(uuid.NewString())
}

// GenerateUserToken mints a token asserting the given user id.
func (tm *TokenManager) GenerateUserToken(userID int64) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: &userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(UserTokenTTL)),
		},
	}
	return tm.sign(claims)
}

// RotateToken mints a fresh token for the same subject as claims, with new
// issued-at and expiry timestamps. The preference key derived from the new
// claims is identical to the old one.
func (tm *TokenManager) RotateToken(claims *Claims) (string, *Claims, error) {
	if claims.UserID != nil {
		return tm.GenerateUserToken(*claims.UserID)
	}
	return tm.mintAnonymous(claims.AnonymousID)
}

func (tm *TokenManager) mintAnonymous(anonymousID string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		AnonymousID: anonymousID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AnonymousTokenTTL)),
		},
	}
	return tm.sign(claims)
}

func (tm *TokenManager) sign(claims *Claims) (string, *Claims, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, ErrGenerationFailed
	}
	return tokenString, claims, nil
}

// Parse verifies a token string and returns its claims. Expiry is reported
// as ErrExpiredToken so callers can tell a lapsed identity from a forged one;
// every other failure collapses to ErrInvalidToken.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	if claims.UserID == nil && claims.AnonymousID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
