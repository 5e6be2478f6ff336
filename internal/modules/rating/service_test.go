// README: Rating tests (validation, averages, commission tiers).
package rating

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"campuseats/internal/types"
)

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	cases := []CreateCommand{
		{DasherID: "d1", OrderID: "o1", Rate: 0},
		{DasherID: "d1", OrderID: "o1", Rate: 6},
		{DasherID: "", OrderID: "o1", Rate: 3},
		{DasherID: "d1", OrderID: "", Rate: 3},
	}
	for i, cmd := range cases {
		if _, err := svc.Create(ctx, cmd); !errors.Is(err, ErrBadRate) {
			t.Errorf("case %d: got %v, want ErrBadRate", i, err)
		}
	}
}

func TestAverageForDasher(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	avg, err := svc.AverageForDasher(ctx, "d1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 0 {
		t.Fatalf("unrated average = %v, want 0", avg)
	}

	for i, rate := range []int{4, 5, 3} {
		id := types.ID(fmt.Sprintf("o%d", i))
		if _, err := svc.Create(ctx, CreateCommand{DasherID: "d1", OrderID: id, Rate: rate}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	avg, err = svc.AverageForDasher(ctx, "d1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 4 {
		t.Fatalf("average = %v, want 4", avg)
	}

	// another dasher's ratings do not bleed in
	if _, err := svc.Create(ctx, CreateCommand{DasherID: "d2", OrderID: "ox", Rate: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	avg, err = svc.AverageForDasher(ctx, "d1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 4 {
		t.Fatalf("average after other dasher = %v, want 4", avg)
	}
}

func TestAdminPercent(t *testing.T) {
	cases := []struct {
		avg  float64
		want int
	}{
		{5, 20},
		{4.5, 20},
		{4, 20},
		{3.9, 30},
		{3, 30},
		{2.5, 40},
		{2, 40},
		{1.5, 50},
		{1, 50},
		{0.9, 100},
		{0, 100},
	}
	for _, tc := range cases {
		if got := AdminPercent(tc.avg); got != tc.want {
			t.Errorf("AdminPercent(%v) = %d, want %d", tc.avg, got, tc.want)
		}
	}
}
