package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"minitweet/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and fills in ID and CreatedAt.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (name, email, profile, hashed_password, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, u.Name, u.Email, u.Profile, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	return translate("create user", err)
}

// FindByEmail returns user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, name, email, profile, hashed_password, created_at
        FROM users
        WHERE email = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Profile, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, translate("find user by email", err)
	}
	return &u, nil
}
