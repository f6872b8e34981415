package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"minitweet/internal/model"
)

type TweetRepository struct {
	db *pgxpool.Pool
}

func NewTweetRepository(db *pgxpool.Pool) *TweetRepository {
	return &TweetRepository{db: db}
}

// CreateTweet appends a tweet. A missing author surfaces as apperr.ErrNotFound.
func (r *TweetRepository) CreateTweet(ctx context.Context, t *model.Tweet) error {
	query := `
        INSERT INTO tweets (user_id, tweet, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, t.UserID, t.Text).Scan(&t.ID, &t.CreatedAt)
	return translate("create tweet", err)
}

// ListTimeline returns the user's own tweets and the tweets of every user
// they follow, each once, in insertion order.
func (r *TweetRepository) ListTimeline(ctx context.Context, userID int64) ([]model.Tweet, error) {
	query := `
        SELECT t.id, t.user_id, t.tweet, t.created_at
        FROM tweets t
        WHERE t.user_id = $1
           OR t.user_id IN (
               SELECT ufl.follow_user_id
               FROM users_follow_list ufl
               WHERE ufl.user_id = $1
           )
        ORDER BY t.id ASC
    `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translate("list timeline", err)
	}
	defer rows.Close()

	tweets := []model.Tweet{}
	for rows.Next() {
		var t model.Tweet
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.CreatedAt); err != nil {
			return nil, translate("scan tweet", err)
		}
		tweets = append(tweets, t)
	}

	return tweets, translate("list timeline", rows.Err())
}
