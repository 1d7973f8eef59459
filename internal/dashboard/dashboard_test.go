package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func seed(t *testing.T, d *db.DB) {
	t.Helper()
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO equipment_items (id, code, name, quantity, created_at) VALUES (1, 'EQ-1', 'Proyektor', 2, ?)`, []any{now}},
		{`INSERT INTO equipment_items (id, code, name, quantity, created_at) VALUES (2, 'EQ-2', 'Kursi', 30, ?)`, []any{now}},
		{`INSERT INTO loans (loan_ulid, item_id, borrower, quantity, status, loaned_at) VALUES ('L1', 1, 'Budi', 1, 'borrowed', ?)`,
			[]any{time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)}},
		{`INSERT INTO loans (loan_ulid, item_id, borrower, quantity, status, loaned_at) VALUES ('L2', 2, 'Sari', 5, 'returned', ?)`,
			[]any{time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)}},
		{`INSERT INTO loans (loan_ulid, item_id, borrower, quantity, status, loaned_at) VALUES ('L3', 2, 'Andi', 4, 'borrowed', ?)`,
			[]any{time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)}},
		{`INSERT INTO loans (loan_ulid, item_id, borrower, quantity, status, loaned_at) VALUES ('L4', 2, 'Dewi', 1, 'returned', ?)`,
			[]any{time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)}},
		{`INSERT INTO consumable_items (code, name, quantity, created_at) VALUES ('K-1', 'Kertas', 0, ?)`, []any{now}},
		{`INSERT INTO consumable_items (code, name, quantity, created_at) VALUES ('K-2', 'Tinta', 3, ?)`, []any{now}},
	}
	for _, s := range stmts {
		if _, err := d.Exec(s.q, s.args...); err != nil {
			t.Fatalf("seed %q: %v", s.q, err)
		}
	}
}

func TestSummary(t *testing.T) {
	d := db.NewTestDB(t)
	seed(t, d)
	svc := NewService(d)
	svc.clock = fixedClock{time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)}

	s, err := svc.Summary(context.Background(), 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.EquipmentItems != 2 || s.EquipmentUnits != 37 || s.ActiveLoans != 2 || s.BorrowedUnits != 5 {
		t.Errorf("unexpected equipment figures %+v", s)
	}
	if s.ConsumableItems != 2 || s.ConsumableEmpty != 1 {
		t.Errorf("unexpected consumable figures %+v", s)
	}
	if s.Year != 2024 || len(s.LoansPerMonth) != 12 {
		t.Fatalf("unexpected period %d / %d", s.Year, len(s.LoansPerMonth))
	}
	if s.LoansPerMonth[2].Loans != 2 || s.LoansPerMonth[11].Loans != 1 || s.LoansPerMonth[0].Loans != 0 {
		t.Errorf("unexpected monthly counts %+v", s.LoansPerMonth)
	}

	s, _ = svc.Summary(context.Background(), 2023)
	if s.LoansPerMonth[11].Loans != 1 {
		t.Errorf("2023: unexpected monthly counts %+v", s.LoansPerMonth)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := db.NewTestDB(t)
	r := gin.New()
	RegisterRoutes(r, NewService(d))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/summary?year=2024", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var s Summary
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.EquipmentItems != 0 || len(s.LoansPerMonth) != 12 {
		t.Errorf("unexpected empty summary %+v", s)
	}

	for _, q := range []string{"abc", "20240"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/summary?year="+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("year=%s: expected 400, got %d", q, w.Code)
		}
		var e apierr.ErrorDTO
		if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Error.Code != apierr.CodeInvalidArgument {
			t.Errorf("year=%s: unexpected body %s", q, w.Body.String())
		}
	}
}
