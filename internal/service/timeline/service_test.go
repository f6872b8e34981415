package timeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitweet/internal/model"
	"minitweet/internal/testutil"
)

func texts(tl *model.Timeline) []string {
	out := make([]string, 0, len(tl.Tweets))
	for _, t := range tl.Tweets {
		out = append(out, t.Text)
	}
	return out
}

func TestGet_FolloweeTweets(t *testing.T) {
	store := testutil.NewStore()
	follow := testutil.Follow()
	store.Seed(t,
		testutil.User(1, "오지환", "asdf@naver.com", "test password").With(
			follow.Label("follower"),
		),
		testutil.User(2, "홍길동", "hong@naver.com", "test password").With(
			testutil.Tweet("Hello I'm Hong"),
			follow.Label("followee"),
		),
		testutil.User(3, "stranger", "x@naver.com", "pw").With(
			testutil.Tweet("not followed"),
		),
	)
	svc := NewService(store)

	tl, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tl.UserID)
	require.Len(t, tl.Tweets, 1)
	assert.Equal(t, int64(2), tl.Tweets[0].UserID)
	assert.Equal(t, "Hello I'm Hong", tl.Tweets[0].Text)
}

func TestGet_InsertionOrder(t *testing.T) {
	store := testutil.NewStore()
	store.Seed(t,
		testutil.User(1, "a", "a@naver.com", "pw"),
		testutil.User(2, "b", "b@naver.com", "pw"),
	)
	ctx := context.Background()
	for _, tw := range []model.Tweet{
		{UserID: 2, Text: "first"},
		{UserID: 1, Text: "second"},
		{UserID: 2, Text: "third"},
	} {
		require.NoError(t, store.CreateTweet(ctx, &tw))
	}
	_, err := store.Follow(ctx, 1, 2)
	require.NoError(t, err)
	_, err = store.Follow(ctx, 1, 1)
	require.NoError(t, err)

	tl, err := NewService(store).Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, texts(tl))
}

func TestGet_UnknownUserIsEmpty(t *testing.T) {
	tl, err := NewService(testutil.NewStore()).Get(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, tl.Tweets)
	assert.Empty(t, tl.Tweets)
}

func TestGet_StoreFailure(t *testing.T) {
	store := testutil.NewStore()
	store.FailWith(errors.New("db down"))

	_, err := NewService(store).Get(context.Background(), 1)
	assert.Error(t, err)
}
