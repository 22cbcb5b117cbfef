// Package store persists warp records. The menu engine only consumes this
// boundary through data providers; nothing in the render path writes here.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no warp.
var ErrNotFound = errors.New("warp not found")

// Warp is one saved teleport target.
type Warp struct {
	ID        int64
	Name      string
	Owner     string
	World     string
	X, Y, Z   float64
	Yaw       float32
	Pitch     float32
	Public    bool
	CreatedAt time.Time
}

// Store is the warp CRUD boundary. Lookups address a warp either by id or by
// the (name, owner) pair, which is unique.
type Store interface {
	Create(ctx context.Context, w *Warp) error
	GetByID(ctx context.Context, id int64) (*Warp, error)
	GetByName(ctx context.Context, name, owner string) (*Warp, error)
	Update(ctx context.Context, w *Warp) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByName(ctx context.Context, name, owner string) error
	ListByOwner(ctx context.Context, owner string) ([]Warp, error)
	ListPublic(ctx context.Context) ([]Warp, error)
	Close() error
}
