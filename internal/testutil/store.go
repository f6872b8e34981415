// Package testutil provides in-memory stores and fixtures for service and
// handler tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"minitweet/internal/apperr"
	"minitweet/internal/model"
)

type edge struct {
	follower, followee int64
}

// Store is an in-memory stand-in for the postgres repositories. It
// implements every store interface the services declare.
type Store struct {
	mu          sync.Mutex
	users       map[int64]*model.User
	byEmail     map[string]int64
	tweets      []model.Tweet
	follows     map[edge]time.Time
	nextUserID  int64
	nextTweetID int64
	err         error
}

func NewStore() *Store {
	return &Store{
		users:   map[int64]*model.User{},
		byEmail: map[string]int64{},
		follows: map[edge]time.Time{},
	}
}

// FailWith makes every following call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.insertUser(u)
}

func (s *Store) insertUser(u *model.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return fmt.Errorf("create user: %w", apperr.ErrConflict)
	}
	if u.ID == 0 {
		u.ID = s.nextUserID + 1
	}
	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("create user %d: %w", u.ID, apperr.ErrConflict)
	}
	if u.ID > s.nextUserID {
		s.nextUserID = u.ID
	}
	u.CreatedAt = time.Now()

	stored := *u
	s.users[u.ID] = &stored
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("find user by email: %w", apperr.ErrNotFound)
	}
	u := *s.users[id]
	return &u, nil
}

func (s *Store) CreateTweet(_ context.Context, t *model.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.insertTweet(t)
}

func (s *Store) insertTweet(t *model.Tweet) error {
	if _, ok := s.users[t.UserID]; !ok {
		return fmt.Errorf("create tweet: %w", apperr.ErrNotFound)
	}
	s.nextTweetID++
	t.ID = s.nextTweetID
	t.CreatedAt = time.Now()
	s.tweets = append(s.tweets, *t)
	return nil
}

func (s *Store) ListTimeline(_ context.Context, userID int64) ([]model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []model.Tweet{}
	for _, t := range s.tweets {
		if t.UserID == userID {
			out = append(out, t)
			continue
		}
		if _, ok := s.follows[edge{userID, t.UserID}]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) Follow(_ context.Context, followerID, followeeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.insertFollow(followerID, followeeID)
}

func (s *Store) insertFollow(followerID, followeeID int64) (bool, error) {
	if _, ok := s.users[followerID]; !ok {
		return false, fmt.Errorf("follow: %w", apperr.ErrNotFound)
	}
	if _, ok := s.users[followeeID]; !ok {
		return false, fmt.Errorf("follow: %w", apperr.ErrNotFound)
	}
	e := edge{followerID, followeeID}
	if _, ok := s.follows[e]; ok {
		return false, nil
	}
	s.follows[e] = time.Now()
	return true, nil
}

func (s *Store) Unfollow(_ context.Context, followerID, followeeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	e := edge{followerID, followeeID}
	if _, ok := s.follows[e]; !ok {
		return false, nil
	}
	delete(s.follows, e)
	return true, nil
}

// Following reports whether the edge exists.
func (s *Store) Following(followerID, followeeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.follows[edge{followerID, followeeID}]
	return ok
}
