package mq

import "time"

// Routing keys on the events exchange.
const (
	RoutingKeyUserRegistered = "user.registered"
	RoutingKeyTweetCreated   = "tweet.created"
	RoutingKeyUserFollowed   = "user.followed"
	RoutingKeyUserUnfollowed = "user.unfollowed"
)

// 用户注册事件的 payload
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// 发推事件的 payload
type TweetCreatedPayload struct {
	TweetID   int64     `json:"tweet_id"`
	UserID    int64     `json:"user_id"`
	Tweet     string    `json:"tweet"`
	CreatedAt time.Time `json:"created_at"`
}

// 关注/取消关注事件的 payload
type FollowChangedPayload struct {
	FollowerID int64     `json:"follower_id"`
	FolloweeID int64     `json:"followee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
