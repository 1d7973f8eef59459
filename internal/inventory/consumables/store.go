package consumables

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

const itemColumns = `id, code, name, unit, quantity, created_at`

// 入庫・出庫を同じ形に揃えたビュー
const movementUnion = `
	SELECT 'in' AS direction, t.id, t.tx_ulid, t.item_id, c.code, c.name, t.quantity, t.occurred_at,
	       t.source AS party, '' AS purpose, t.note, t.recorded_by
	FROM consumable_inbound t JOIN consumable_items c ON c.id = t.item_id
	UNION ALL
	SELECT 'out' AS direction, t.id, t.tx_ulid, t.item_id, c.code, c.name, t.quantity, t.occurred_at,
	       t.requester AS party, t.purpose, t.note, t.recorded_by
	FROM consumable_outbound t JOIN consumable_items c ON c.id = t.item_id`

type Store struct{ db *db.DB }

func NewStore(d *db.DB) *Store { return &Store{db: d} }

// ===== items =====

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	if err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Unit, &it.Quantity, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// InsertItem: quantity=0 で登録（初期在庫は ledger 経由）
func (s *Store) InsertItem(ctx context.Context, tx db.DBTX, it *Item) (int64, error) {
	const q = `INSERT INTO consumable_items (code, name, unit, quantity, created_at) VALUES (?, ?, ?, 0, ?)`
	res, err := tx.ExecContext(ctx, q, it.Code, it.Name, it.Unit, it.CreatedAt)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return 0, apierr.ErrConflict(fmt.Sprintf("Kode barang %s sudah terdaftar", it.Code))
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetItem(ctx context.Context, q db.DBTX, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM consumable_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.ErrNotFound(fmt.Sprintf("Barang habis pakai %d tidak ditemukan", id))
	}
	return it, err
}

func (s *Store) FindIDByCode(ctx context.Context, q db.DBTX, code string) (int64, bool, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM consumable_items WHERE code = ?`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Store) UpdateDetails(ctx context.Context, tx db.DBTX, id int64, name, unit *string) error {
	var (
		sets []string
		args []any
	)
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*name))
	}
	if unit != nil {
		sets = append(sets, "unit = ?")
		args = append(args, strings.TrimSpace(*unit))
	}
	if len(sets) == 0 {
		_, err := s.GetItem(ctx, tx, id)
		return err
	}
	args = append(args, id)
	res, err := tx.ExecContext(ctx, "UPDATE consumable_items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err := s.GetItem(ctx, tx, id)
		return err
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, search string, onlyEmpty bool, p Page) ([]*Item, int64, error) {
	var where strings.Builder
	args := []any{}
	where.WriteString(" WHERE 1=1")
	if v := strings.TrimSpace(search); v != "" {
		where.WriteString(" AND (name LIKE ? OR code LIKE ?)")
		like := "%" + v + "%"
		args = append(args, like, like)
	}
	if onlyEmpty {
		where.WriteString(" AND quantity = 0")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM consumable_items"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	p = normalizePage(p)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM consumable_items"+where.String()+" ORDER BY code ASC LIMIT ? OFFSET ?",
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, it)
	}
	return list, total, rows.Err()
}

// ===== movements =====

func (s *Store) InsertInbound(ctx context.Context, tx db.DBTX, m *Movement) (int64, error) {
	const q = `
	INSERT INTO consumable_inbound (tx_ulid, item_id, quantity, occurred_at, source, note, recorded_by)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, m.ULID, m.ItemID, m.Quantity, m.OccurredAt, m.Party, m.Note, m.RecordedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) InsertOutbound(ctx context.Context, tx db.DBTX, m *Movement) (int64, error) {
	const q = `
	INSERT INTO consumable_outbound (tx_ulid, item_id, quantity, occurred_at, requester, purpose, note, recorded_by)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, m.ULID, m.ItemID, m.Quantity, m.OccurredAt, m.Party, m.Purpose, m.Note, m.RecordedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func scanMovement(row interface{ Scan(...any) error }) (*Movement, error) {
	var (
		m  Movement
		at db.Timestamp
	)
	if err := row.Scan(
		&m.Direction, &m.ID, &m.ULID, &m.ItemID, &m.ItemCode, &m.ItemName, &m.Quantity, &at,
		&m.Party, &m.Purpose, &m.Note, &m.RecordedBy,
	); err != nil {
		return nil, err
	}
	m.OccurredAt = at.Time
	return &m, nil
}

// ListMovements: 期間（年・月）は [from, to) の範囲に変換して両方言で同じ SQL にする
func (s *Store) ListMovements(ctx context.Context, f MovementFilter, p Page) ([]*Movement, int64, error) {
	var where strings.Builder
	args := []any{}
	where.WriteString(" WHERE 1=1")
	if f.Direction != nil {
		where.WriteString(" AND m.direction = ?")
		args = append(args, string(*f.Direction))
	}
	if f.ItemID != nil {
		where.WriteString(" AND m.item_id = ?")
		args = append(args, *f.ItemID)
	}
	if from, to, ok := periodRange(f.Year, f.Month); ok {
		where.WriteString(" AND m.occurred_at >= ? AND m.occurred_at < ?")
		args = append(args, from, to)
	}

	var total int64
	countQ := "SELECT COUNT(*) FROM (" + movementUnion + ") m" + where.String()
	if err := s.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	p = normalizePage(p)
	q := "SELECT * FROM (" + movementUnion + ") m" + where.String() +
		" ORDER BY m.occurred_at DESC, m.direction ASC, m.id DESC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []*Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// AllMovementsForItem: 品目別の履歴（件数は品目あたり小さい想定でページングしない）
func (s *Store) AllMovementsForItem(ctx context.Context, itemID int64) ([]*Movement, error) {
	q := "SELECT * FROM (" + movementUnion + ") m WHERE m.item_id = ? ORDER BY m.occurred_at ASC, m.id ASC"
	rows, err := s.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func periodRange(year, month int) (time.Time, time.Time, bool) {
	if year <= 0 {
		return time.Time{}, time.Time{}, false
	}
	if month >= 1 && month <= 12 {
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0), true
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0), true
}

func normalizePage(p Page) Page {
	if p.Limit <= 0 || p.Limit > 500 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
