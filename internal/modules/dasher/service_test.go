// README: Dasher registry tests.
package dasher

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterStartsPending(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterCommand{}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("empty name: got %v, want ErrBadRequest", err)
	}

	d, err := svc.Register(ctx, RegisterCommand{Name: "Jo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if d.Status != StatusPending {
		t.Fatalf("status = %s, want pending", d.Status)
	}
}

func TestSetStatus(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	d, err := svc.Register(ctx, RegisterCommand{Name: "Jo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.SetStatus(ctx, d.ID, "banned"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("unknown status: got %v, want ErrBadRequest", err)
	}
	if err := svc.SetStatus(ctx, "ghost", StatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown dasher: got %v, want ErrNotFound", err)
	}

	if err := svc.SetStatus(ctx, d.ID, StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	got, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusActive {
		t.Fatalf("status = %s, want active", got.Status)
	}

	ds, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("list = %d, want 1", len(ds))
	}
}
