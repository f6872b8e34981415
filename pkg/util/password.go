package util

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when BcryptHasher.Cost is zero.
const DefaultBcryptCost = 8

// BcryptHasher hashes with bcrypt at Cost (DefaultBcryptCost when zero).
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptHasher) Compare(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
