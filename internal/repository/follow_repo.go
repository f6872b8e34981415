package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FollowRepository struct {
	db *pgxpool.Pool
}

func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

// Follow inserts the edge; an existing edge is left untouched. It reports
// whether a new edge was created.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `
        INSERT INTO users_follow_list (user_id, follow_user_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, follow_user_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, followerID, followeeID)
	if err != nil {
		return false, translate("follow", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Unfollow deletes the edge if present and reports whether one was removed.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `
        DELETE FROM users_follow_list
        WHERE user_id = $1 AND follow_user_id = $2
    `
	tag, err := r.db.Exec(ctx, query, followerID, followeeID)
	if err != nil {
		return false, translate("unfollow", err)
	}
	return tag.RowsAffected() == 1, nil
}
