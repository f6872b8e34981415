package model

import "time"

// Follow is a directed edge: FollowerID sees FolloweeID's tweets.
type Follow struct {
	FollowerID int64
	FolloweeID int64
	CreatedAt  time.Time
}
