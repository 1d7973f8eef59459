package loans

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"sarpras-backend/internal/inventory/ledger"
	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

const dateLayout = "2006-01-02"

// ===== インターフェース群 =====

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ===== Service本体 =====

type Service struct {
	db     *db.DB
	store  *Store
	ledger *ledger.Ledger
	clock  Clock
	id     IDGen
}

func NewService(d *db.DB, l *ledger.Ledger) *Service {
	return &Service{
		db:     d,
		store:  NewStore(d),
		ledger: l,
		clock:  realClock{},
		id:     ulidGen{},
	}
}

// CreateLoan: 在庫を減らして貸出行を作る（両方成功か両方なし）
func (s *Service) CreateLoan(ctx context.Context, in CreateLoanRequest, operator string) (LoanResponse, error) {
	if in.Quantity <= 0 {
		return LoanResponse{}, apierr.ErrInvalid("Jumlah pinjam harus lebih dari 0")
	}
	if in.Quantity > ledger.MaxQuantity {
		return LoanResponse{}, apierr.ErrInvalid(ledger.QuantityTooLargeMessage())
	}
	borrower := strings.TrimSpace(in.Borrower)
	if borrower == "" {
		return LoanResponse{}, apierr.ErrInvalid("Nama peminjam wajib diisi")
	}
	if in.ItemID <= 0 {
		return LoanResponse{}, apierr.ErrInvalid("item_id must be > 0")
	}

	now := s.clock.Now()
	m := &Loan{
		ULID:     s.id.NewULID(now),
		ItemID:   in.ItemID,
		Borrower: borrower,
		Quantity: in.Quantity,
		Status:   StatusBorrowed,
		LoanedAt: now,
		LentBy:   toNullString(&operator),
		Note:     toNullString(in.Note),
	}
	if in.DueOn != nil && *in.DueOn != "" {
		due, err := time.Parse(dateLayout, *in.DueOn)
		if err != nil {
			return LoanResponse{}, apierr.ErrInvalid("invalid due_on format, expected YYYY-MM-DD")
		}
		m.DueOn = sql.NullTime{Time: due, Valid: true}
	}

	var out *Loan
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// 在庫ロック & 減算（不足なら InsufficientStockError で全体ロールバック）
		bal, err := s.ledger.Adjust(ctx, tx, ledger.Equipment, in.ItemID, -in.Quantity)
		if err != nil {
			return err
		}

		id, err := s.store.InsertLoan(ctx, tx, m)
		if err != nil {
			return err
		}
		log.Printf("[INFO] loan %s: item %d -%d (remaining %d)", m.ULID, in.ItemID, in.Quantity, bal.Quantity)

		out, err = s.store.GetLoan(ctx, tx, id)
		return err
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return toResponse(out), nil
}

// ReturnLoan: 返却済みなら何もせず現状を返す（冪等）
func (s *Service) ReturnLoan(ctx context.Context, loanID int64, operator string) (LoanResponse, error) {
	if loanID <= 0 {
		return LoanResponse{}, apierr.ErrInvalid("loan id must be > 0")
	}

	var out *Loan
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		l, err := s.store.LockLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}

		if l.Status == StatusBorrowed {
			if _, err := s.ledger.Adjust(ctx, tx, ledger.Equipment, l.ItemID, l.Quantity); err != nil {
				return err
			}
			if err := s.store.MarkReturned(ctx, tx, l.ID, s.clock.Now(), toNullString(&operator)); err != nil {
				return err
			}
			log.Printf("[INFO] loan %d returned: item %d +%d", l.ID, l.ItemID, l.Quantity)
		}

		out, err = s.store.GetLoan(ctx, tx, loanID)
		return err
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return toResponse(out), nil
}

// 貸出単一取得（ID or ULID）
func (s *Service) GetLoan(ctx context.Context, key string) (LoanResponse, error) {
	if key == "" {
		return LoanResponse{}, apierr.ErrInvalid("id or ulid is required")
	}

	var (
		l   *Loan
		err error
	)
	// 数値として解釈できればID検索、それ以外は loan_ulid
	if id, perr := strconv.ParseInt(key, 10, 64); perr == nil && id > 0 {
		l, err = s.store.GetLoan(ctx, s.db, id)
	} else {
		l, err = s.store.GetLoanByULID(ctx, key)
	}
	if err != nil {
		return LoanResponse{}, err
	}
	return toResponse(l), nil
}

type ListResult struct {
	Items      []LoanResponse `json:"items"`
	Total      int64          `json:"total"`
	NextOffset int            `json:"next_offset"`
}

func (s *Service) ListLoans(ctx context.Context, f LoanFilter, p Page) (ListResult, error) {
	rows, total, err := s.store.ListLoans(ctx, f, p)
	if err != nil {
		return ListResult{}, err
	}
	items := make([]LoanResponse, 0, len(rows))
	for _, l := range rows {
		items = append(items, toResponse(l))
	}

	limit := p.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	next := p.Offset + limit
	if next >= int(total) {
		next = 0
	}
	return ListResult{Items: items, Total: total, NextOffset: next}, nil
}

// ListOutstanding: 返却待ち（borrowed のみ）
func (s *Service) ListOutstanding(ctx context.Context, f LoanFilter, p Page) (ListResult, error) {
	st := StatusBorrowed
	f.Status = &st
	return s.ListLoans(ctx, f, p)
}

// ---- helpers ----

func toNullString(s *string) (ns sql.NullString) {
	if s != nil && strings.TrimSpace(*s) != "" {
		ns.Valid, ns.String = true, strings.TrimSpace(*s)
	}
	return
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
