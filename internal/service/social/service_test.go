package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mqcontracts "minitweet/contracts/mq"
	"minitweet/internal/apperr"
	"minitweet/internal/testutil"
)

func newService(t *testing.T) (*Service, *testutil.Store, *testutil.Events) {
	t.Helper()
	store := testutil.NewStore()
	store.Seed(t,
		testutil.User(1, "오지환", "asdf@naver.com", "test password"),
		testutil.User(2, "홍길동", "hong@naver.com", "test password"),
	)
	events := &testutil.Events{}
	return NewService(store, zap.NewNop()).WithEvents(events), store, events
}

func TestFollowUnfollow(t *testing.T) {
	svc, store, events := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, 1, 2))
	assert.True(t, store.Following(1, 2))
	assert.False(t, store.Following(2, 1), "edges are directed")

	require.NoError(t, svc.Follow(ctx, 1, 2), "follow is idempotent")

	require.NoError(t, svc.Unfollow(ctx, 1, 2))
	assert.False(t, store.Following(1, 2))

	require.NoError(t, svc.Unfollow(ctx, 1, 2), "unfollow is idempotent")

	assert.Equal(t, []string{
		mqcontracts.RoutingKeyUserFollowed,
		mqcontracts.RoutingKeyUserUnfollowed,
	}, events.Keys(), "only real changes are published")
}

func TestFollow_UnknownUser(t *testing.T) {
	svc, _, events := newService(t)

	err := svc.Follow(context.Background(), 1, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, events.Keys())
}

func TestFollow_InvalidID(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Follow(ctx, 1, 0), apperr.ErrValidation)
	assert.ErrorIs(t, svc.Unfollow(ctx, 1, -3), apperr.ErrValidation)
}

func TestFollow_Self(t *testing.T) {
	svc, store, _ := newService(t)

	require.NoError(t, svc.Follow(context.Background(), 1, 1))
	assert.True(t, store.Following(1, 1))
}
