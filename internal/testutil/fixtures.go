package testutil

import (
	"fmt"
	"testing"

	"github.com/qawatake/fixify"
	"golang.org/x/crypto/bcrypt"

	"minitweet/internal/model"
)

// User is a user fixture whose password hash is computed at the cheapest
// bcrypt cost. A zero id is assigned on Seed.
func User(id int64, name, email, password string) *fixify.Model[model.User] {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return fixify.NewModel(&model.User{
		ID:           id,
		Name:         name,
		Email:        email,
		Profile:      "male",
		PasswordHash: string(hash),
	})
}

// Tweet is authored by the user it is attached to.
func Tweet(text string) *fixify.Model[model.Tweet] {
	return fixify.NewModel(&model.Tweet{Text: text},
		fixify.ConnectorFunc(func(_ testing.TB, tweet *model.Tweet, author *model.User) {
			tweet.UserID = author.ID
		}),
	)
}

// Follow connects to a user labeled "follower" and one labeled "followee".
func Follow() *fixify.Model[model.Follow] {
	return fixify.NewModel(new(model.Follow),
		fixify.ConnectorFuncWithLabel("follower", func(_ testing.TB, f *model.Follow, follower *model.User) {
			f.FollowerID = follower.ID
		}),
		fixify.ConnectorFuncWithLabel("followee", func(_ testing.TB, f *model.Follow, followee *model.User) {
			f.FolloweeID = followee.ID
		}),
	)
}

// Seed writes the fixture graph into s, parents first.
func (s *Store) Seed(tb testing.TB, models ...fixify.IModel) {
	tb.Helper()
	f := fixify.New(tb, models...)

	s.mu.Lock()
	defer s.mu.Unlock()
	f.Iterate(func(v any) error {
		switch v := v.(type) {
		case *model.User:
			return s.insertUser(v)
		case *model.Tweet:
			return s.insertTweet(v)
		case *model.Follow:
			_, err := s.insertFollow(v.FollowerID, v.FolloweeID)
			return err
		default:
			return fmt.Errorf("unsupported fixture %T", v)
		}
	})
}
