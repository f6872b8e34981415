package util

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	a, err := GenerateJWT(1, "secret", time.Hour)
	require.NoError(t, err)
	b, err := GenerateJWT(1, "secret", time.Hour)
	require.NoError(t, err)

	ca, err := ParseJWT(a, "secret")
	require.NoError(t, err)
	cb, err := ParseJWT(b, "secret")
	require.NoError(t, err)
	assert.NotEqual(t, ca.TokenID, cb.TokenID)
}

func TestJWT_Rejects(t *testing.T) {
	valid, err := GenerateJWT(1, "secret", time.Hour)
	require.NoError(t, err)

	expired, err := GenerateJWT(1, "secret", -time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "jti": "x", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti": "x", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "jti": "x",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]struct {
		token  string
		secret string
	}{
		"wrong secret": {valid, "other"},
		"expired":      {expired, "secret"},
		"alg none":     {none, "secret"},
		"missing user": {noUser, "secret"},
		"missing exp":  {noExp, "secret"},
		"garbage":      {"not-a-token", "secret"},
		"empty":        {"", "secret"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWT(tc.token, tc.secret)
			assert.Error(t, err)
		})
	}
}

func TestExtractToken(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"abc":        "abc",
		"Bearer abc": "abc",
		"bearer abc": "abc",
		"Basic abc":  "",
		"Bearer a b": "",
		"  abc  ":    "abc",
	}
	for header, want := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, ExtractToken(req), "header %q", header)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("test password")
	require.NoError(t, err)
	assert.NotEqual(t, "test password", hash)
	assert.True(t, h.Compare(hash, "test password"))
	assert.False(t, h.Compare(hash, "wrong"))

	again, err := h.Hash("test password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	var h BcryptHasher
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
	assert.True(t, h.Compare(hash, "pw"))
	assert.False(t, h.Compare(hash, "nope"))
}

func TestClassifyDBError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, DBErrNone},
		{pgx.ErrNoRows, DBErrNotFound},
		{fmt.Errorf("wrapped: %w", pgx.ErrNoRows), DBErrNotFound},
		{&pgconn.PgError{Code: "23505"}, DBErrUniqueViolation},
		{&pgconn.PgError{Code: "23503"}, DBErrForeignKey},
		{&pgconn.PgError{Code: "23514"}, DBErrCheckViolation},
		{&pgconn.PgError{Code: "42P01"}, DBErrUnknown},
		{context.DeadlineExceeded, DBErrTimeout},
		{context.Canceled, DBErrCanceled},
		{fmt.Errorf("boom"), DBErrUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyDBError(tc.err), "%v", tc.err)
	}
}
