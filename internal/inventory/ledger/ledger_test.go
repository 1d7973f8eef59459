package ledger

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

func seedConsumable(t *testing.T, d *db.DB, code string, qty int) int64 {
	t.Helper()
	res, err := d.Exec(`INSERT INTO consumable_items (code, name, quantity, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)`, code, "Item "+code, qty)
	if err != nil {
		t.Fatalf("seeding consumable: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func quantityOf(t *testing.T, d *db.DB, id int64) int {
	t.Helper()
	var q int
	if err := d.QueryRow(`SELECT quantity FROM consumable_items WHERE id = ?`, id).Scan(&q); err != nil {
		t.Fatalf("reading quantity: %v", err)
	}
	return q
}

func adjust(ctx context.Context, d *db.DB, l *Ledger, id int64, delta int) (Balance, error) {
	var b Balance
	err := db.RunInTx(ctx, d, nil, func(ctx context.Context, tx db.DBTX) error {
		var err error
		b, err = l.Adjust(ctx, tx, Consumable, id, delta)
		return err
	})
	return b, err
}

func TestAdjustAppliesDelta(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	ctx := context.Background()
	id := seedConsumable(t, d, "K-1", 5)

	b, err := adjust(ctx, d, l, id, 3)
	if err != nil {
		t.Fatalf("Adjust(+3): %v", err)
	}
	if b.Quantity != 8 {
		t.Errorf("expected balance 8, got %d", b.Quantity)
	}

	b, err = adjust(ctx, d, l, id, -8)
	if err != nil {
		t.Fatalf("Adjust(-8): %v", err)
	}
	if b.Quantity != 0 || quantityOf(t, d, id) != 0 {
		t.Errorf("expected empty stock, got balance %d / stored %d", b.Quantity, quantityOf(t, d, id))
	}
}

func TestAdjustRejectsNegativeBalance(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	id := seedConsumable(t, d, "K-1", 5)

	_, err := adjust(context.Background(), d, l, id, -7)

	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.Available != 5 || ise.Requested != 7 {
		t.Errorf("unexpected error fields %+v", ise)
	}
	if err.Error() != "Stok tidak cukup! Sisa stok: 5" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if apierr.CodeOf(err) != apierr.CodeInsufficientStock {
		t.Errorf("expected INSUFFICIENT_STOCK, got %s", apierr.CodeOf(err))
	}
	if q := quantityOf(t, d, id); q != 5 {
		t.Errorf("quantity changed to %d", q)
	}
}

func TestEquipmentMessage(t *testing.T) {
	err := &InsufficientStockError{Kind: Equipment, Available: 1, Requested: 3}
	if err.Error() != "Stok tidak cukup. Sisa 1" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAdjustValidation(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	ctx := context.Background()
	id := seedConsumable(t, d, "K-1", 5)

	if _, err := adjust(ctx, d, l, id, 0); apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Errorf("zero delta: expected INVALID_ARGUMENT, got %v", err)
	}
	if _, err := adjust(ctx, d, l, 9999, 1); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Errorf("missing item: expected NOT_FOUND, got %v", err)
	}
}

func TestAdjustRolledBackWithScope(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	id := seedConsumable(t, d, "K-1", 5)
	boom := errors.New("history insert failed")

	err := db.RunInTx(context.Background(), d, nil, func(ctx context.Context, tx db.DBTX) error {
		if _, err := l.Adjust(ctx, tx, Consumable, id, -2); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if q := quantityOf(t, d, id); q != 5 {
		t.Errorf("rolled back scope left quantity %d", q)
	}
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	id := seedConsumable(t, d, "K-1", 5)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := adjust(context.Background(), d, l, id, -1)
			mu.Lock()
			defer mu.Unlock()
			var ise *InsufficientStockError
			switch {
			case err == nil:
				ok++
			case errors.As(err, &ise):
				fail++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 5 || fail != 5 {
		t.Errorf("expected 5 ok / 5 rejected, got %d / %d", ok, fail)
	}
	if q := quantityOf(t, d, id); q != 0 {
		t.Errorf("expected quantity 0, got %d", q)
	}
}

func TestRandomSequenceKeepsBalanceNonNegative(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	ctx := context.Background()
	id := seedConsumable(t, d, "K-1", 0)
	rng := rand.New(rand.NewSource(42))

	model := 0
	for i := 0; i < 200; i++ {
		delta := rng.Intn(11) - 5
		if delta == 0 {
			continue
		}
		_, err := adjust(ctx, d, l, id, delta)
		if model+delta < 0 {
			var ise *InsufficientStockError
			if !errors.As(err, &ise) {
				t.Fatalf("step %d: expected rejection of %d on %d, got %v", i, delta, model, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		model += delta
		if q := quantityOf(t, d, id); q != model || q < 0 {
			t.Fatalf("step %d: stored %d, expected %d", i, q, model)
		}
	}
}

func TestAdjustRejectsQuantityOverflow(t *testing.T) {
	d := db.NewTestDB(t)
	l := New(d.Dialect)
	ctx := context.Background()
	id := seedConsumable(t, d, "K-1", MaxQuantity-1)

	if _, err := adjust(ctx, d, l, id, 2); apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT past the ceiling, got %v", err)
	}
	if q := quantityOf(t, d, id); q != MaxQuantity-1 {
		t.Errorf("quantity changed to %d", q)
	}

	b, err := adjust(ctx, d, l, id, 1)
	if err != nil || b.Quantity != MaxQuantity {
		t.Fatalf("Adjust(+1) to the ceiling: %v (balance %d)", err, b.Quantity)
	}

	for _, delta := range []int{math.MaxInt64, math.MinInt64 + 1} {
		if _, err := adjust(ctx, d, l, id, delta); apierr.CodeOf(err) != apierr.CodeInvalidArgument {
			t.Errorf("delta %d: expected INVALID_ARGUMENT, got %v", delta, err)
		}
	}
}
