package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"kitchensaver/internal/model"
)

// ErrInvalidToken is returned when a token is malformed, its signature
// does not verify, or it has expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claim set carried by every bearer token:
// the user's email as subject plus role and numeric id.
type Claims struct {
	Role   model.Role `json:"role"`
	UserID uint       `json:"id"`
	jwt.RegisteredClaims
}

// JWTService mints and verifies signed bearer tokens. Tokens are never
// revoked server-side; expiry is the only invalidation mechanism.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a token codec with the given HMAC secret and
// token lifetime.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Mint produces a signed token for the given identity.
func (s *JWTService) Mint(email string, role model.Role, id uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:   role,
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the decoded claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
