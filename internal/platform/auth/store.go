package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sarpras-backend/internal/platform/db"
)

type Account struct {
	ID           string
	PasswordHash string
	IsDisabled   bool
	CreatedAt    time.Time
}

type AccountStore interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	SetDisabled(ctx context.Context, id string, disabled bool) (int64, error)
}

type Store struct{ db *db.DB }

func NewStore(d *db.DB) AccountStore {
	return &Store{db: d}
}

func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	const q = `
SELECT id, password_hash, is_disabled, created_at
FROM accounts
WHERE id = ?
LIMIT 1
`
	var a Account
	var isDisabledInt int
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID,
		&a.PasswordHash,
		&isDisabledInt,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if isDisabledInt != 0 {
		a.IsDisabled = true
	}
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
INSERT INTO accounts (id, password_hash, is_disabled, created_at)
VALUES (?, ?, 0, ?)
`
	_, err := s.db.ExecContext(ctx, q, a.ID, a.PasswordHash, time.Now().UTC())
	return err
}

func (s *Store) SetDisabled(ctx context.Context, id string, disabled bool) (int64, error) {
	v := 0
	if disabled {
		v = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET is_disabled = ? WHERE id = ?`, v, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
