// Package storage provides interfaces and common errors for link and user persistence.
package storage

import (
	"context"
	"errors"

	"go-url-shortener/types"
)

// Common errors returned by storage operations.
var (
	ErrShortURLNotFound = errors.New("short URL not found")
	ErrShortCodeExists  = errors.New("short code already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already exists")
)

// LinkRepository persists links. Lookups only see links whose DeletedAt is
// unset; uniqueness of ShortCode is enforced over every stored row.
type LinkRepository interface {
	FindActiveByShortCode(ctx context.Context, shortCode string) (types.Link, error)
	FindActiveByShortCodeAndOwner(ctx context.Context, shortCode, ownerID string) (types.Link, error)
	// ListActiveByOwner returns the page newest first, along with the total
	// number of active links the owner has.
	ListActiveByOwner(ctx context.Context, ownerID string, offset, limit int) ([]types.Link, int64, error)
	CreateLink(ctx context.Context, link *types.Link) error
	// SaveLink writes TargetURL and DeletedAt; it never touches Clicks.
	SaveLink(ctx context.Context, link *types.Link) error
	// IncrementClicks adds one to an active link's counter and returns the new value.
	IncrementClicks(ctx context.Context, id string) (int64, error)
}

// UserRepository persists registered users.
type UserRepository interface {
	FindUserByID(ctx context.Context, id string) (types.User, error)
	FindUserByEmail(ctx context.Context, email string) (types.User, error)
	CreateUser(ctx context.Context, user *types.User) error
}

// Store is the full persistence surface used by the server.
type Store interface {
	LinkRepository
	UserRepository
	Migrate() error
	Close() error
}
