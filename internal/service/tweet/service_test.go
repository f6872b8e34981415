package tweet

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mqcontracts "minitweet/contracts/mq"
	"minitweet/internal/apperr"
	"minitweet/internal/testutil"
)

func TestPost(t *testing.T) {
	store := testutil.NewStore()
	store.Seed(t, testutil.User(1, "오지환", "asdf@naver.com", "test password"))
	events := &testutil.Events{}
	svc := NewService(store, 0, zap.NewNop()).WithEvents(events)
	ctx := context.Background()

	tw, err := svc.Post(ctx, 1, "I am test tweet!")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tw.ID)

	timeline, err := store.ListTimeline(ctx, 1)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "I am test tweet!", timeline[0].Text)

	all := events.All()
	require.Len(t, all, 1)
	assert.Equal(t, mqcontracts.RoutingKeyTweetCreated, all[0].RoutingKey)
	payload, ok := all[0].Payload.(mqcontracts.TweetCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(1), payload.UserID)
	assert.Equal(t, "I am test tweet!", payload.Tweet)
}

func TestPost_Unbounded(t *testing.T) {
	store := testutil.NewStore()
	store.Seed(t, testutil.User(1, "u", "u@naver.com", "pw"))
	svc := NewService(store, 0, zap.NewNop())

	_, err := svc.Post(context.Background(), 1, strings.Repeat("가", 10000))
	assert.NoError(t, err)
}

func TestPost_MaxLength(t *testing.T) {
	store := testutil.NewStore()
	store.Seed(t, testutil.User(1, "u", "u@naver.com", "pw"))
	svc := NewService(store, 5, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Post(ctx, 1, "가나다라마")
	assert.NoError(t, err, "length counts characters, not bytes")

	_, err = svc.Post(ctx, 1, "가나다라마바")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPost_UnknownAuthor(t *testing.T) {
	svc := NewService(testutil.NewStore(), 0, zap.NewNop())

	_, err := svc.Post(context.Background(), 7, "hello")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPost_PublishFailureIsIgnored(t *testing.T) {
	store := testutil.NewStore()
	store.Seed(t, testutil.User(1, "u", "u@naver.com", "pw"))
	events := &testutil.Events{Err: assert.AnError}
	svc := NewService(store, 0, zap.NewNop()).WithEvents(events)

	_, err := svc.Post(context.Background(), 1, "still stored")
	assert.NoError(t, err)
	assert.Len(t, events.Keys(), 1)
}
