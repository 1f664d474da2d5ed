package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockledger/pkg/roles"
)

// TokenService issues and validates the session tokens carrying the role
// granted at login.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Hour * 120, // 5 days
	}
}

func (t *TokenService) Generate(role roles.Role) (string, error) {
	claims := jwt.MapClaims{
		"role": role.String(),
		"exp":  time.Now().Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseRole validates the token and extracts the role claim.
func (t *TokenService) ParseRole(tokenString string) (roles.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	roleClaim, ok := claims["role"].(string)
	if !ok {
		return "", fmt.Errorf("role claim is not a string")
	}

	role := roles.Role(roleClaim)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", roleClaim)
	}

	return role, nil
}
