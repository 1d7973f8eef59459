package loans

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"sarpras-backend/internal/inventory/ledger"
	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	d := db.NewTestDB(t)
	svc := NewService(d, ledger.New(d.Dialect))
	svc.clock = fixedClock{time.Date(2024, 8, 17, 9, 0, 0, 0, time.UTC)}
	return svc, d
}

func seedItem(t *testing.T, d *db.DB, code string, qty int) int64 {
	t.Helper()
	res, err := d.Exec(`INSERT INTO equipment_items (code, name, quantity, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)`, code, "Barang "+code, qty)
	if err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func itemQty(t *testing.T, d *db.DB, id int64) int {
	t.Helper()
	var q int
	if err := d.QueryRow(`SELECT quantity FROM equipment_items WHERE id = ?`, id).Scan(&q); err != nil {
		t.Fatalf("reading quantity: %v", err)
	}
	return q
}

func loanCount(t *testing.T, d *db.DB) int {
	t.Helper()
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM loans`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestBorrowThenReturnRestoresQuantity(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, d, "EQ-1", 10)

	due := "2024-08-24"
	loan, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Budi", Quantity: 4, DueOn: &due}, "petugas1")
	if err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}
	if loan.Status != StatusBorrowed || loan.ItemCode != "EQ-1" || loan.LentBy == nil || *loan.LentBy != "petugas1" {
		t.Errorf("unexpected loan %+v", loan)
	}
	if loan.DueOn == nil || *loan.DueOn != due {
		t.Errorf("due_on not stored: %+v", loan.DueOn)
	}
	if q := itemQty(t, d, item); q != 6 {
		t.Fatalf("expected 6 after borrow, got %d", q)
	}

	ret, err := svc.ReturnLoan(ctx, loan.ID, "petugas2")
	if err != nil {
		t.Fatalf("ReturnLoan: %v", err)
	}
	if ret.Status != StatusReturned || ret.ReturnedAt == nil || ret.ReturnedBy == nil || *ret.ReturnedBy != "petugas2" {
		t.Errorf("unexpected returned loan %+v", ret)
	}
	if q := itemQty(t, d, item); q != 10 {
		t.Errorf("expected 10 after return, got %d", q)
	}
}

func TestReturnIsIdempotent(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, d, "EQ-1", 5)

	loan, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Sari", Quantity: 2}, "")
	if err != nil {
		t.Fatal(err)
	}
	first, err := svc.ReturnLoan(ctx, loan.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ReturnLoan(ctx, loan.ID, "")
	if err != nil {
		t.Fatalf("second return should be a silent no-op, got %v", err)
	}
	if second.Status != StatusReturned || !second.ReturnedAt.Equal(*first.ReturnedAt) {
		t.Errorf("second return changed the record: %+v", second)
	}
	if q := itemQty(t, d, item); q != 5 {
		t.Errorf("double return credited stock twice: %d", q)
	}

	if _, err := svc.ReturnLoan(ctx, 999, ""); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Errorf("expected NOT_FOUND for unknown loan, got %v", err)
	}
}

func TestConcurrentReturnsCreditOnce(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, d, "EQ-1", 5)

	loan, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Sari", Quantity: 3}, "")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ReturnLoan(ctx, loan.ID, ""); err != nil {
				t.Errorf("ReturnLoan: %v", err)
			}
		}()
	}
	wg.Wait()

	if q := itemQty(t, d, item); q != 5 {
		t.Errorf("expected quantity 5 after concurrent returns, got %d", q)
	}
}

func TestCreateLoanValidation(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, d, "EQ-1", 5)

	_, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Budi", Quantity: 0}, "")
	var api *apierr.APIError
	if !errors.As(err, &api) || api.Code != apierr.CodeInvalidArgument || api.Message != "Jumlah pinjam harus lebih dari 0" {
		t.Errorf("unexpected error for zero quantity: %v", err)
	}

	if _, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "  ", Quantity: 1}, ""); apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT for blank borrower, got %v", err)
	}

	bad := "17/08/2024"
	if _, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Budi", Quantity: 1, DueOn: &bad}, ""); apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT for bad due_on, got %v", err)
	}

	if _, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: 999, Borrower: "Budi", Quantity: 1}, ""); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Errorf("expected NOT_FOUND for unknown item, got %v", err)
	}

	if q := itemQty(t, d, item); q != 5 || loanCount(t, d) != 0 {
		t.Errorf("rejected requests left a trace: qty=%d loans=%d", q, loanCount(t, d))
	}
}

func TestBorrowMoreThanAvailable(t *testing.T) {
	svc, d := newTestService(t)
	item := seedItem(t, d, "EQ-1", 2)

	_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{ItemID: item, Borrower: "Budi", Quantity: 3}, "")
	var ise *ledger.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if err.Error() != "Stok tidak cukup. Sisa 2" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if q := itemQty(t, d, item); q != 2 || loanCount(t, d) != 0 {
		t.Errorf("failed borrow left a trace: qty=%d loans=%d", q, loanCount(t, d))
	}
}

func TestConcurrentBorrowsAreSerialized(t *testing.T) {
	svc, d := newTestService(t)
	item := seedItem(t, d, "EQ-1", 10)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateLoan(context.Background(), CreateLoanRequest{ItemID: item, Borrower: "Budi", Quantity: 3}, "")
			mu.Lock()
			defer mu.Unlock()
			var ise *ledger.InsufficientStockError
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

	if ok != 3 || fail != 2 {
		t.Errorf("expected 3 successes and 2 rejections, got %d / %d", ok, fail)
	}
	if q := itemQty(t, d, item); q != 1 {
		t.Errorf("expected quantity 1, got %d", q)
	}
	if n := loanCount(t, d); n != 3 {
		t.Errorf("expected 3 loan rows, got %d", n)
	}
}

func TestRandomBorrowReturnSequence(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, d, "EQ-1", 8)
	rng := rand.New(rand.NewSource(7))

	stock := 8
	var open []int64
	for i := 0; i < 150; i++ {
		if len(open) > 0 && rng.Intn(2) == 0 {
			k := rng.Intn(len(open))
			res, err := svc.ReturnLoan(ctx, open[k], "")
			if err != nil {
				t.Fatalf("step %d: return: %v", i, err)
			}
			stock += res.Quantity
			open = append(open[:k], open[k+1:]...)
		} else {
			qty := rng.Intn(4) + 1
			res, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Acak", Quantity: qty}, "")
			if qty > stock {
				var ise *ledger.InsufficientStockError
				if !errors.As(err, &ise) {
					t.Fatalf("step %d: expected rejection of %d with stock %d, got %v", i, qty, stock, err)
				}
			} else {
				if err != nil {
					t.Fatalf("step %d: borrow: %v", i, err)
				}
				stock -= qty
				open = append(open, res.ID)
			}
		}

		if q := itemQty(t, d, item); q != stock || q < 0 {
			t.Fatalf("step %d: stored %d, expected %d", i, q, stock)
		}
	}
}

func TestGetAndListLoans(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, d, "EQ-1", 10)

	a, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Budi", Quantity: 1}, "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.CreateLoan(ctx, CreateLoanRequest{ItemID: item, Borrower: "Sari", Quantity: 2}, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ReturnLoan(ctx, a.ID, ""); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetLoan(ctx, b.ULID)
	if err != nil || got.ID != b.ID {
		t.Errorf("GetLoan by ulid: %+v %v", got, err)
	}
	if _, err := svc.GetLoan(ctx, "01HNOTEXIST0000000000000000"); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	out, err := svc.ListOutstanding(ctx, LoanFilter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Total != 1 || out.Items[0].Borrower != "Sari" {
		t.Errorf("unexpected outstanding list %+v", out)
	}

	all, err := svc.ListLoans(ctx, LoanFilter{Borrower: "bud"}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if all.Total != 1 || all.Items[0].Status != StatusReturned {
		t.Errorf("unexpected filtered list %+v", all)
	}
}
