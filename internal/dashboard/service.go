// Package dashboard はトップ画面用の集計（読み取りのみ）
package dashboard

import (
	"context"
	"time"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

type MonthCount struct {
	Month int `json:"month"`
	Loans int `json:"loans"`
}

type Summary struct {
	EquipmentItems  int          `json:"equipment_items"`
	EquipmentUnits  int          `json:"equipment_units"`
	ActiveLoans     int          `json:"active_loans"`
	BorrowedUnits   int          `json:"borrowed_units"`
	ConsumableItems int          `json:"consumable_items"`
	ConsumableEmpty int          `json:"consumable_out_of_stock"`
	Year            int          `json:"year"`
	LoansPerMonth   []MonthCount `json:"loans_per_month"`
}

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type Service struct {
	db    *db.DB
	clock Clock
}

func NewService(d *db.DB) *Service { return &Service{db: d, clock: realClock{}} }

// Summary: year が 0 なら今年
func (s *Service) Summary(ctx context.Context, year int) (Summary, error) {
	if year == 0 {
		year = s.clock.Now().Year()
	}
	if year < 1900 || year > 9999 {
		return Summary{}, apierr.ErrInvalid("year out of range")
	}
	out := Summary{Year: year}

	// 在庫の quantity は手元にある数なので、総数は貸出中を足して出す
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM equipment_items`,
	).Scan(&out.EquipmentItems, &out.EquipmentUnits); err != nil {
		return Summary{}, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM loans WHERE status = 'borrowed'`,
	).Scan(&out.ActiveLoans, &out.BorrowedUnits); err != nil {
		return Summary{}, err
	}
	out.EquipmentUnits += out.BorrowedUnits

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN quantity = 0 THEN 1 ELSE 0 END), 0) FROM consumable_items`,
	).Scan(&out.ConsumableItems, &out.ConsumableEmpty); err != nil {
		return Summary{}, err
	}

	perMonth, err := s.loansPerMonth(ctx, year)
	if err != nil {
		return Summary{}, err
	}
	out.LoansPerMonth = perMonth
	return out, nil
}

// 月の切り出しは方言差があるので Go 側で数える
func (s *Service) loansPerMonth(ctx context.Context, year int) ([]MonthCount, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.db.QueryContext(ctx,
		`SELECT loaned_at FROM loans WHERE loaned_at >= ? AND loaned_at < ?`,
		from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]MonthCount, 12)
	for i := range counts {
		counts[i].Month = i + 1
	}
	for rows.Next() {
		var at db.Timestamp
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		counts[at.Month()-1].Loans++
	}
	return counts, rows.Err()
}
