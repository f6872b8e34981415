package model

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	Profile      string
	PasswordHash string
	CreatedAt    time.Time
}
