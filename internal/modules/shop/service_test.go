// README: Shop catalog tests.
package shop

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndItems(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterCommand{}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("empty name: got %v, want ErrBadRequest", err)
	}

	sh, err := svc.Register(ctx, RegisterCommand{Name: "Kape Tayo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sh.ID == "" {
		t.Fatal("expected generated shop id")
	}

	if _, err := svc.AddItem(ctx, AddItemCommand{ShopID: "ghost", Name: "Latte", UnitPrice: 120}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown shop: got %v, want ErrNotFound", err)
	}

	it, err := svc.AddItem(ctx, AddItemCommand{ShopID: sh.ID, Name: "Latte", UnitPrice: 12000, Stock: 5})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	items, err := svc.ListItems(ctx, sh.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != it.ID {
		t.Fatalf("items = %+v", items)
	}
}

func TestDecrementStock(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	sh, err := svc.Register(ctx, RegisterCommand{Name: "Kape Tayo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	it, err := svc.AddItem(ctx, AddItemCommand{ShopID: sh.ID, Name: "Latte", UnitPrice: 12000, Stock: 2})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := svc.DecrementStock(ctx, it.ID, 0); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("zero qty: got %v, want ErrBadRequest", err)
	}
	if err := svc.DecrementStock(ctx, it.ID, 1); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	// stock may go negative; settlement is best-effort about counts
	if err := svc.DecrementStock(ctx, it.ID, 5); err != nil {
		t.Fatalf("oversell decrement: %v", err)
	}
	got, err := svc.GetItem(ctx, it.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Stock != -4 {
		t.Fatalf("stock = %d, want -4", got.Stock)
	}
}
