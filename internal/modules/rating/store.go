// README: Rating store contract.
package rating

import (
	"context"

	"campuseats/internal/types"
)

type Store interface {
	Create(ctx context.Context, r *Rating) error
	ListByDasher(ctx context.Context, dasherID types.ID) ([]Rating, error)
}
