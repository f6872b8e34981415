package util

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the part of a session token the API cares about.
type Claims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

// GenerateJWT creates a token for a given user ID valid for ttl.
func GenerateJWT(userID int64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates token and extracts its claims.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	// JSON numbers decode as float64
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil, jwt.ErrTokenMalformed
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, jwt.ErrTokenMalformed
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.Join(jwt.ErrTokenMalformed, err)
	}

	return &Claims{
		UserID:    int64(userIDFloat),
		TokenID:   tokenID,
		ExpiresAt: exp.Time,
	}, nil
}

// ExtractToken reads the Authorization header. Both a bare token and the
// "Bearer <token>" form are accepted.
func ExtractToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}

	parts := strings.Fields(auth)
	switch {
	case len(parts) == 1:
		return parts[0]
	case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
		return parts[1]
	default:
		return ""
	}
}
