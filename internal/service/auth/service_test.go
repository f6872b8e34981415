package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mqcontracts "minitweet/contracts/mq"
	"minitweet/internal/apperr"
	"minitweet/internal/testutil"
	"minitweet/pkg/util"
)

const secret = "test-secret"

func newService(t *testing.T) (*Service, *testutil.Store, *testutil.Denylist) {
	t.Helper()
	store := testutil.NewStore()
	store.Seed(t,
		testutil.User(1, "오지환", "asdf@naver.com", "test password"),
		testutil.User(2, "홍길동", "hong@naver.com", "test password"),
	)
	denylist := testutil.NewDenylist()
	svc := NewService(store, util.BcryptHasher{Cost: bcrypt.MinCost}, secret, time.Hour, zap.NewNop()).
		WithRevocation(denylist)
	return svc, store, denylist
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "asdf@naver.com", "test password")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestLogin_Rejected(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "asdf@naver.com", "wrong password")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = svc.Login(ctx, "nobody@naver.com", "test password")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.NotErrorIs(t, err, apperr.ErrNotFound, "unknown email is folded into auth failure")
}

func TestLogin_StoreFailure(t *testing.T) {
	svc, store, _ := newService(t)
	store.FailWith(errors.New("connection refused"))

	_, err := svc.Login(context.Background(), "asdf@naver.com", "test password")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrAuth)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "hong@naver.com", "test password")
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	forged, err := util.GenerateJWT(2, "other-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestLogout(t *testing.T) {
	svc, _, denylist := newService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "asdf@naver.com", "test password")
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	ttl, ok := denylist.TTL(claims.TokenID)
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrAuth)

	other, err := svc.Login(ctx, "asdf@naver.com", "test password")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, other)
	assert.NoError(t, err, "a fresh login is unaffected")
}

func TestAuthenticate_RevocationStoreDown(t *testing.T) {
	svc, _, denylist := newService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "asdf@naver.com", "test password")
	require.NoError(t, err)

	denylist.Err = errors.New("redis down")
	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestRegister(t *testing.T) {
	svc, store, _ := newService(t)
	events := &testutil.Events{}
	svc.WithEvents(events)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Name:     "새사용자",
		Email:    " new@naver.com ",
		Password: "secret",
		Profile:  "female",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "new@naver.com", u.Email)
	assert.NotEqual(t, "secret", u.PasswordHash)

	stored, err := store.FindByEmail(ctx, "new@naver.com")
	require.NoError(t, err)
	assert.Equal(t, "female", stored.Profile)

	_, err = svc.Login(ctx, "new@naver.com", "secret")
	assert.NoError(t, err)

	assert.Equal(t, []string{mqcontracts.RoutingKeyUserRegistered}, events.Keys())
}

func TestRegister_Rejected(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "dup", Email: "asdf@naver.com", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Register(ctx, RegisterInput{Name: "no password", Email: "a@b.c"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Register(ctx, RegisterInput{Name: "no email", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAuthenticate_RevokedTokenAcceptedWhileStoreDown(t *testing.T) {
	svc, _, denylist := newService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "asdf@naver.com", "test password")
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, claims))

	denylist.Err = errors.New("redis down")
	_, err = svc.Authenticate(ctx, token)
	assert.NoError(t, err, "revocation check fails open")

	denylist.Err = nil
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}
