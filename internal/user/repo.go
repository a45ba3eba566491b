package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repo interface {
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Reset(ctx context.Context) error
}
