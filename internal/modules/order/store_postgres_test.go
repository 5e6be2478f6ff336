// README: DB-backed order store tests; skipped unless CAMPUSEATS_TEST_DSN is set.
package order

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuseats/internal/types"
)

// Round-trips an order through the live schema. Every column the store names
// in its INSERT and SELECT lists has to exist for this to pass, so it catches
// drift between store_postgres.go and migrations/0001_init.sql.
func TestPostgresStoreRoundTrip(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	in := &Order{
		ID:                  "o_rt",
		CustomerID:          "c1",
		ShopID:              "s1",
		Status:              StatusWaitingForShop,
		Items:               []Item{{ItemID: "i1", Name: "Sisig Rice", UnitPrice: 9500, Quantity: 2}},
		DeliveryFee:         1500,
		TotalPrice:          20500,
		PaymentMethod:       PaymentGCash,
		PreviousNoShowFee:   1500,
		PreviousNoShowItems: 500,
		DeliveryProofURI:    "s3://proofs/rt.jpg",
		CreatedAt:           time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := store.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := store.Get(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.CustomerID != in.CustomerID || out.ShopID != in.ShopID || out.Status != in.Status {
		t.Fatalf("identity fields: %+v", out)
	}
	if out.PreviousNoShowFee != 1500 || out.PreviousNoShowItems != 500 {
		t.Fatalf("carried charges = %d/%d, want 1500/500", out.PreviousNoShowFee, out.PreviousNoShowItems)
	}
	if out.DeliveryFee != 1500 || out.TotalPrice != 20500 || out.PaymentMethod != PaymentGCash {
		t.Fatalf("amounts: %+v", out)
	}
	if len(out.Items) != 1 || out.Items[0].ItemID != "i1" || out.Items[0].Quantity != 2 {
		t.Fatalf("items: %+v", out.Items)
	}
	if out.DeliveryProofURI != "s3://proofs/rt.jpg" || out.NoShowProofURI != "" {
		t.Fatalf("proofs: %+v", out)
	}
	if out.DasherID != nil || out.CompletedAt != nil {
		t.Fatalf("expected unassigned incomplete order, got %+v", out)
	}
}

func TestPostgresStoreStatusCAS(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	o := &Order{
		ID:            "o_cas",
		CustomerID:    "c2",
		ShopID:        "s1",
		Status:        StatusWaitingForDasher,
		PaymentMethod: PaymentCash,
		CreatedAt:     time.Now(),
	}
	if err := store.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	dasher := types.ID("d1")
	ok, err := store.UpdateStatus(ctx, o.ID, StatusWaitingForDasher, StatusToShop, 0, &dasher)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !ok {
		t.Fatal("expected CAS to win on version 0")
	}
	// stale version loses
	ok, err = store.UpdateStatus(ctx, o.ID, StatusWaitingForDasher, StatusToShop, 0, &dasher)
	if err != nil {
		t.Fatalf("stale update: %v", err)
	}
	if ok {
		t.Fatal("stale CAS reported success")
	}

	got, err := store.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusToShop || got.StatusVersion != 1 {
		t.Fatalf("status = %s v%d, want %s v1", got.Status, got.StatusVersion, StatusToShop)
	}
	if got.DasherID == nil || *got.DasherID != dasher {
		t.Fatalf("dasher_id not stored: %+v", got)
	}
}

func TestPostgresStoreSecondActiveOrderRejected(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	first := &Order{
		ID:            "o_a1",
		CustomerID:    "c3",
		ShopID:        "s1",
		Status:        StatusWaitingForShop,
		PaymentMethod: PaymentCash,
		CreatedAt:     time.Now(),
	}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := &Order{
		ID:            "o_a2",
		CustomerID:    "c3",
		ShopID:        "s1",
		Status:        StatusWaitingForShop,
		PaymentMethod: PaymentCash,
		CreatedAt:     time.Now(),
	}
	if err := store.Create(ctx, second); !errors.Is(err, ErrActiveOrder) {
		t.Fatalf("second active create: got %v, want ErrActiveOrder", err)
	}

	// terminal orders for the same customer are fine
	done := &Order{
		ID:            "o_a3",
		CustomerID:    "c3",
		ShopID:        "s1",
		Status:        StatusCancelledByCustomer,
		PaymentMethod: PaymentCash,
		CreatedAt:     time.Now(),
	}
	if err := store.Create(ctx, done); err != nil {
		t.Fatalf("create terminal: %v", err)
	}
}

func setupPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("CAMPUSEATS_TEST_DSN")
	if dsn == "" {
		t.Skip("CAMPUSEATS_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE order_status_events, orders"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewPostgresStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "migrations", "0001_init.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
