package model

import "time"

// Tweet is append-only; ID grows with insertion order.
type Tweet struct {
	ID        int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}

// Timeline is a user's own tweets plus the tweets of everyone they follow,
// oldest first.
type Timeline struct {
	UserID int64
	Tweets []Tweet
}
