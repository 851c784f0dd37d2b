package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	uuid "github.com/satori/go.uuid"
)

type TokenDetails struct {
	Token     string
	TokenUuid string
	UserID    string
	ExpiresIn int64
}

// CreateToken mints an HMAC-signed JWT for the given user. Each token gets
// its own uuid so refresh tokens can be parked in redis and revoked one by
// one.
func CreateToken(userID string, ttl time.Duration, secret string) (*TokenDetails, error) {
	now := time.Now().UTC()
	td := &TokenDetails{
		TokenUuid: uuid.NewV4().String(),
		UserID:    userID,
		ExpiresIn: now.Add(ttl).Unix(),
	}

	claims := jwt.MapClaims{
		"sub":        userID,
		"token_uuid": td.TokenUuid,
		"exp":        td.ExpiresIn,
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	td.Token = token
	return td, nil
}

type TokenPayload struct {
	UserID    string
	TokenUuid string
}

// ValidateToken verifies the signature and expiry and returns the payload.
func ValidateToken(token string, secret string) (*TokenPayload, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("validate token: invalid claims")
	}

	sub, _ := claims["sub"].(string)
	tokenUuid, _ := claims["token_uuid"].(string)
	if sub == "" || tokenUuid == "" {
		return nil, fmt.Errorf("validate token: missing claims")
	}

	return &TokenPayload{UserID: sub, TokenUuid: tokenUuid}, nil
}
