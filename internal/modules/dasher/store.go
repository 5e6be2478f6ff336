// README: Dasher store contract; postgres and in-memory implementations.
package dasher

import (
	"context"

	"campuseats/internal/types"
)

type Store interface {
	Create(ctx context.Context, d *Dasher) error
	Get(ctx context.Context, id types.ID) (*Dasher, error)
	UpdateStatus(ctx context.Context, id types.ID, status Status) error
	List(ctx context.Context) ([]Dasher, error)
}
