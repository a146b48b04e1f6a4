package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned for unknown ids, slugs and usernames.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
