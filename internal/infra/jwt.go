// README: Bearer-token verification backed by HMAC JWTs.
package infra

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken is the verified identity attached to a request.
type AuthToken struct {
	UID  string
	Role string
}

// TokenVerifier abstracts token verification so handlers and middleware can be
// tested with a stub.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*AuthToken, error)
}

var ErrInvalidToken = errors.New("invalid token")

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) VerifyToken(_ context.Context, raw string) (*AuthToken, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return &AuthToken{UID: sub, Role: role}, nil
}
