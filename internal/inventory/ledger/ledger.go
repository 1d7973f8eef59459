// Package ledger owns the stock balance of every item. It is the only code
// that writes the quantity column of equipment_items and consumable_items.
// Every call must run inside db.RunInTx together with the caller's history row.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
	"sarpras-backend/internal/platform/metrics"
)

// MaxQuantity は quantity 列（MySQL INT）に入る上限
const MaxQuantity = math.MaxInt32

type Kind string

const (
	Equipment  Kind = "equipment"
	Consumable Kind = "consumable"
)

func (k Kind) table() (string, error) {
	switch k {
	case Equipment:
		return "equipment_items", nil
	case Consumable:
		return "consumable_items", nil
	}
	return "", fmt.Errorf("unknown stock kind %q", k)
}

type Balance struct {
	Kind     Kind  `json:"kind"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type Ledger struct {
	dialect db.Dialect
}

func New(d db.Dialect) *Ledger {
	return &Ledger{dialect: d}
}

// Lock は行ロックを取って現在庫を読む（SELECT ... FOR UPDATE）
func (l *Ledger) Lock(ctx context.Context, tx db.DBTX, kind Kind, itemID int64) (Balance, error) {
	table, err := kind.table()
	if err != nil {
		return Balance{}, err
	}

	q := "SELECT quantity FROM " + table + " WHERE id = ?" + l.dialect.LockClause
	var qty int
	if err := tx.QueryRowContext(ctx, q, itemID).Scan(&qty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Balance{}, apierr.ErrNotFound(notFoundMessage(kind, itemID))
		}
		return Balance{}, fmt.Errorf("locking %s %d: %w", kind, itemID, err)
	}
	return Balance{Kind: kind, ItemID: itemID, Quantity: qty}, nil
}

// Adjust は quantity += delta を適用する。負になる場合は何も書かずに InsufficientStockError。
func (l *Ledger) Adjust(ctx context.Context, tx db.DBTX, kind Kind, itemID int64, delta int) (Balance, error) {
	if delta == 0 {
		return Balance{}, apierr.ErrInvalid("adjustment must not be zero")
	}
	if delta > MaxQuantity || delta < -MaxQuantity {
		return Balance{}, apierr.ErrInvalid(QuantityTooLargeMessage())
	}

	cur, err := l.Lock(ctx, tx, kind, itemID)
	if err != nil {
		return Balance{}, err
	}
	if cur.Quantity+delta < 0 {
		metrics.StockRejections.WithLabelValues(string(kind)).Inc()
		return Balance{}, &InsufficientStockError{
			Kind:      kind,
			ItemID:    itemID,
			Available: cur.Quantity,
			Requested: -delta,
		}
	}

	if delta > 0 && cur.Quantity > MaxQuantity-delta {
		return Balance{}, apierr.ErrInvalid(fmt.Sprintf("Stok melebihi batas maksimum %d (sisa stok: %d)", MaxQuantity, cur.Quantity))
	}

	table, _ := kind.table()
	if _, err := tx.ExecContext(ctx,
		"UPDATE "+table+" SET quantity = quantity + ? WHERE id = ?", delta, itemID); err != nil {
		return Balance{}, fmt.Errorf("adjusting %s %d: %w", kind, itemID, err)
	}

	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	metrics.StockAdjustments.WithLabelValues(string(kind), direction).Inc()

	cur.Quantity += delta
	return cur, nil
}

func QuantityTooLargeMessage() string {
	return fmt.Sprintf("Jumlah maksimum %d", MaxQuantity)
}

func notFoundMessage(kind Kind, itemID int64) string {
	switch kind {
	case Equipment:
		return fmt.Sprintf("Barang %d tidak ditemukan", itemID)
	default:
		return fmt.Sprintf("Barang habis pakai %d tidak ditemukan", itemID)
	}
}
