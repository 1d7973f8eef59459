package loans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

const loanSelect = `
	SELECT l.id, l.loan_ulid, l.item_id, e.code, e.name, l.borrower, l.quantity, l.status,
	       l.loaned_at, l.due_on, l.returned_at, l.lent_by, l.returned_by, l.note
	FROM loans l
	JOIN equipment_items e ON e.id = l.item_id`

type Store struct{ db *db.DB }

func NewStore(d *db.DB) *Store { return &Store{db: d} }

func scanLoan(row interface{ Scan(...any) error }) (*Loan, error) {
	var l Loan
	if err := row.Scan(
		&l.ID, &l.ULID, &l.ItemID, &l.ItemCode, &l.ItemName, &l.Borrower, &l.Quantity, &l.Status,
		&l.LoanedAt, &l.DueOn, &l.ReturnedAt, &l.LentBy, &l.ReturnedBy, &l.Note,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) InsertLoan(ctx context.Context, tx db.DBTX, m *Loan) (int64, error) {
	const q = `
	INSERT INTO loans (loan_ulid, item_id, borrower, quantity, status, loaned_at, due_on, lent_by, note)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		m.ULID, m.ItemID, m.Borrower, m.Quantity, m.Status, m.LoanedAt, m.DueOn, m.LentBy, m.Note)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LockLoan: 返却の二重送信対策で貸出行をロックしてから status を読む
func (s *Store) LockLoan(ctx context.Context, tx db.DBTX, id int64) (*Loan, error) {
	q := `SELECT id, item_id, quantity, status FROM loans WHERE id = ?` + s.db.Dialect.LockClause
	var l Loan
	err := tx.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.ItemID, &l.Quantity, &l.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.ErrNotFound(fmt.Sprintf("Peminjaman %d tidak ditemukan", id))
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) MarkReturned(ctx context.Context, tx db.DBTX, id int64, at time.Time, by sql.NullString) error {
	const q = `UPDATE loans SET status = ?, returned_at = ?, returned_by = ? WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, StatusReturned, at, by, id, StatusBorrowed)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return apierr.ErrConflict("loan is not in borrowed state")
	}
	return nil
}

func (s *Store) GetLoan(ctx context.Context, q db.DBTX, id int64) (*Loan, error) {
	l, err := scanLoan(q.QueryRowContext(ctx, loanSelect+" WHERE l.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.ErrNotFound(fmt.Sprintf("Peminjaman %d tidak ditemukan", id))
	}
	return l, err
}

func (s *Store) GetLoanByULID(ctx context.Context, ulid string) (*Loan, error) {
	l, err := scanLoan(s.db.QueryRowContext(ctx, loanSelect+" WHERE l.loan_ulid = ?", ulid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.ErrNotFound(fmt.Sprintf("Peminjaman %s tidak ditemukan", ulid))
	}
	return l, err
}

func (s *Store) ListLoans(ctx context.Context, f LoanFilter, p Page) ([]*Loan, int64, error) {
	var where strings.Builder
	args := []any{}
	where.WriteString(" WHERE 1=1")
	if f.Status != nil {
		where.WriteString(" AND l.status = ?")
		args = append(args, *f.Status)
	}
	if v := strings.TrimSpace(f.Borrower); v != "" {
		where.WriteString(" AND l.borrower LIKE ?")
		args = append(args, "%"+v+"%")
	}
	if f.ItemID != nil {
		where.WriteString(" AND l.item_id = ?")
		args = append(args, *f.ItemID)
	}

	var total int64
	countQ := "SELECT COUNT(*) FROM loans l" + where.String()
	if err := s.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "DESC"
	if strings.ToLower(p.Order) == "asc" {
		order = "ASC"
	}
	if p.Limit <= 0 || p.Limit > 500 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	q := loanSelect + where.String() + " ORDER BY l.loaned_at " + order + ", l.id " + order + " LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []*Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}
