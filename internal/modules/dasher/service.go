// README: Dasher service: registration and account status.
package dasher

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"campuseats/internal/types"
)

var (
	ErrNotFound   = errors.New("dasher not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type RegisterCommand struct {
	Name string
}

// Register creates a dasher in pending; an admin activates them later.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Dasher, error) {
	if cmd.Name == "" {
		return nil, ErrBadRequest
	}
	d := &Dasher{
		ID:        types.ID(uuid.NewString()),
		Name:      cmd.Name,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Dasher, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) SetStatus(ctx context.Context, id types.ID, status Status) error {
	switch status {
	case StatusPending, StatusActive, StatusSuspended:
	default:
		return ErrBadRequest
	}
	return s.store.UpdateStatus(ctx, id, status)
}

func (s *Service) List(ctx context.Context) ([]Dasher, error) {
	return s.store.List(ctx)
}
