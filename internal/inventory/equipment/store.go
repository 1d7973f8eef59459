package equipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

const itemColumns = `id, code, name, unit, quantity, item_condition, acquisition_year, room, created_at`

type Store struct{ db *db.DB }

func NewStore(d *db.DB) *Store { return &Store{db: d} }

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	if err := row.Scan(
		&it.ID, &it.Code, &it.Name, &it.Unit, &it.Quantity,
		&it.Condition, &it.AcquisitionYear, &it.Room, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

// InsertItem は quantity=0 で登録する。初期在庫は呼び出し側が ledger で積む。
func (s *Store) InsertItem(ctx context.Context, tx db.DBTX, it *Item) (int64, error) {
	const q = `
	INSERT INTO equipment_items
	(code, name, unit, quantity, item_condition, acquisition_year, room, created_at)
	VALUES (?, ?, ?, 0, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, it.Code, it.Name, it.Unit, it.Condition, it.AcquisitionYear, it.Room, it.CreatedAt)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return 0, apierr.ErrConflict(fmt.Sprintf("Kode barang %s sudah terdaftar", it.Code))
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetItem(ctx context.Context, q db.DBTX, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM equipment_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.ErrNotFound(fmt.Sprintf("Barang %d tidak ditemukan", id))
	}
	return it, err
}

// FindIDByCode: 無ければ (0, false, nil)
func (s *Store) FindIDByCode(ctx context.Context, q db.DBTX, code string) (int64, bool, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM equipment_items WHERE code = ?`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Store) CountLoans(ctx context.Context, q db.DBTX, id int64) (int64, error) {
	var n int64
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans WHERE item_id = ?`, id).Scan(&n)
	return n, err
}

func (s *Store) DeleteItem(ctx context.Context, tx db.DBTX, id int64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM equipment_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apierr.ErrNotFound(fmt.Sprintf("Barang %d tidak ditemukan", id))
	}
	return nil
}

// UpdateDetails は記述項目だけを更新する。quantity には触れない。
func (s *Store) UpdateDetails(ctx context.Context, tx db.DBTX, id int64, in UpdateItemRequest) error {
	var (
		sets []string
		args []any
	)
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*in.Name))
	}
	if in.Unit != nil {
		sets = append(sets, "unit = ?")
		args = append(args, strings.TrimSpace(*in.Unit))
	}
	if in.Condition != nil {
		sets = append(sets, "item_condition = ?")
		args = append(args, strings.TrimSpace(*in.Condition))
	}
	if in.AcquisitionYear != nil {
		sets = append(sets, "acquisition_year = ?")
		args = append(args, *in.AcquisitionYear)
	}
	if in.Room != nil {
		sets = append(sets, "room = ?")
		args = append(args, nullString(*in.Room))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := tx.ExecContext(ctx, "UPDATE equipment_items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	// MySQL は値が同じだと affected=0 を返すので存在確認は別途
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetItem(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, q ItemQuery, p Page) ([]*Item, int64, error) {
	var where strings.Builder
	args := []any{}
	where.WriteString(" WHERE 1=1")
	if v := strings.TrimSpace(q.Q); v != "" {
		where.WriteString(" AND (name LIKE ? OR code LIKE ?)")
		like := "%" + v + "%"
		args = append(args, like, like)
	}
	if v := strings.TrimSpace(q.Condition); v != "" {
		where.WriteString(" AND item_condition = ?")
		args = append(args, v)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM equipment_items"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "ASC"
	if strings.ToLower(p.Order) == "desc" {
		order = "DESC"
	}
	if p.Limit <= 0 || p.Limit > 500 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	query := "SELECT " + itemColumns + " FROM equipment_items" + where.String() +
		" ORDER BY code " + order + " LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, p.Limit, p.Offset)...)
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

// AllItems: 書き出し用に全件（品名順）
func (s *Store) AllItems(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+itemColumns+" FROM equipment_items ORDER BY name, code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Summary: 品名ごとの集計（在庫 + 貸出中）
func (s *Store) Summary(ctx context.Context) ([]SummaryRow, error) {
	const q = `
	SELECT e.name, e.unit, COUNT(*), COALESCE(SUM(e.quantity), 0), COALESCE(SUM(l.on_loan), 0)
	FROM equipment_items e
	LEFT JOIN (
		SELECT item_id, SUM(quantity) AS on_loan
		FROM loans WHERE status = 'borrowed'
		GROUP BY item_id
	) l ON l.item_id = e.id
	GROUP BY e.name, e.unit
	ORDER BY e.name, e.unit`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SummaryRow{}
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.Name, &r.Unit, &r.ItemCount, &r.Available, &r.OnLoan); err != nil {
			return nil, err
		}
		r.TotalQuantity = r.Available + r.OnLoan
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
