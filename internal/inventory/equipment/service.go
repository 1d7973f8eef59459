package equipment

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"sarpras-backend/internal/inventory/importer"
	"sarpras-backend/internal/inventory/ledger"
	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

const defaultUnit = "Unit"

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type Service struct {
	db     *db.DB
	store  *Store
	ledger *ledger.Ledger
	clock  Clock
}

func NewService(d *db.DB, l *ledger.Ledger) *Service {
	return &Service{db: d, store: NewStore(d), ledger: l, clock: realClock{}}
}

func (s *Service) CreateItem(ctx context.Context, in CreateItemRequest) (ItemResponse, error) {
	it := &Item{
		Code:            strings.TrimSpace(in.Code),
		Name:            strings.TrimSpace(in.Name),
		Unit:            strings.TrimSpace(in.Unit),
		Condition:       strings.TrimSpace(in.Condition),
		AcquisitionYear: in.AcquisitionYear,
		CreatedAt:       s.clock.Now(),
	}
	if in.Room != nil {
		it.Room = nullString(*in.Room)
	}
	if it.Code == "" || it.Name == "" {
		return ItemResponse{}, apierr.ErrInvalid("code and name are required")
	}
	if in.Quantity < 0 {
		return ItemResponse{}, apierr.ErrInvalid("quantity must be >= 0")
	}
	if in.Quantity > ledger.MaxQuantity {
		return ItemResponse{}, apierr.ErrInvalid(ledger.QuantityTooLargeMessage())
	}
	if it.Unit == "" {
		it.Unit = defaultUnit
	}

	var out *Item
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, err := s.store.InsertItem(ctx, tx, it)
		if err != nil {
			return err
		}
		// 初期在庫も ledger 経由
		if in.Quantity > 0 {
			if _, err := s.ledger.Adjust(ctx, tx, ledger.Equipment, id, in.Quantity); err != nil {
				return err
			}
		}
		out, err = s.store.GetItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return ItemResponse{}, err
	}
	return toResponse(out), nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (ItemResponse, error) {
	it, err := s.store.GetItem(ctx, s.db, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return toResponse(it), nil
}

func (s *Service) ListItems(ctx context.Context, q ItemQuery, p Page) ([]ItemResponse, int64, error) {
	rows, total, err := s.store.ListItems(ctx, q, p)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ItemResponse, 0, len(rows))
	for _, it := range rows {
		items = append(items, toResponse(it))
	}
	return items, total, nil
}

func (s *Service) UpdateItem(ctx context.Context, id int64, in UpdateItemRequest) (ItemResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ItemResponse{}, apierr.ErrInvalid("name must not be empty")
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) == "" {
		return ItemResponse{}, apierr.ErrInvalid("unit must not be empty")
	}

	var out *Item
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.store.UpdateDetails(ctx, tx, id, in); err != nil {
			return err
		}
		var err error
		out, err = s.store.GetItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return ItemResponse{}, err
	}
	return toResponse(out), nil
}

// DeleteItem: 貸出履歴（返却済み含む）が1件でもあれば消さない
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return apierr.ErrInvalid("id must be > 0")
	}
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// 同時に走る貸出と順序付けるため先に行ロック
		if _, err := s.ledger.Lock(ctx, tx, ledger.Equipment, id); err != nil {
			return err
		}
		n, err := s.store.CountLoans(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apierr.ErrConflict(fmt.Sprintf("Barang %d masih memiliki %d riwayat peminjaman", id, n))
		}
		if err := s.store.DeleteItem(ctx, tx, id); err != nil {
			return err
		}
		log.Printf("[INFO] equipment %d deleted", id)
		return nil
	})
}

func (s *Service) Summary(ctx context.Context) ([]SummaryRow, error) {
	return s.store.Summary(ctx)
}

// Import: code で upsert。1行ごとに独立した Tx。
// Export: KIB B 形式の一覧。見出しは Import がそのまま読める名前にする。
func (s *Service) Export(ctx context.Context) (importer.Sheet, error) {
	items, err := s.store.AllItems(ctx)
	if err != nil {
		return importer.Sheet{}, err
	}
	sheet := importer.Sheet{
		Name:   "KIB B - Peralatan & Mesin",
		Header: []string{"No", "Kode Barang", "Nama Peralatan", "Jumlah", "Satuan", "Kondisi", "Tahun Perolehan", "Ruangan"},
		Rows:   make([][]any, 0, len(items)),
	}
	for i, it := range items {
		var year any = ""
		if it.AcquisitionYear > 0 {
			year = it.AcquisitionYear
		}
		sheet.Rows = append(sheet.Rows, []any{
			i + 1, it.Code, it.Name, it.Quantity, it.Unit, it.Condition, year, it.Room.String,
		})
	}
	return sheet, nil
}

func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (importer.Result, error) {
	recs, err := importer.Parse(filename, r)
	if err != nil {
		return importer.Result{}, err
	}
	return importer.Apply(ctx, string(ledger.Equipment), recs, s.importRow), nil
}

func (s *Service) importRow(ctx context.Context, rec importer.Record) (string, error) {
	unit := rec.Unit
	if unit == "" {
		unit = defaultUnit
	}

	action := ""
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, found, err := s.store.FindIDByCode(ctx, tx, rec.Code)
		if err != nil {
			return err
		}

		if !found {
			id, err = s.store.InsertItem(ctx, tx, &Item{
				Code:            rec.Code,
				Name:            rec.Name,
				Unit:            unit,
				Condition:       rec.Condition,
				AcquisitionYear: rec.Year,
				Room:            sql.NullString{},
				CreatedAt:       s.clock.Now(),
			})
			if err != nil {
				return err
			}
			if rec.Quantity > 0 {
				if _, err := s.ledger.Adjust(ctx, tx, ledger.Equipment, id, rec.Quantity); err != nil {
					return err
				}
			}
			action = "created"
			return nil
		}

		upd := UpdateItemRequest{Name: &rec.Name, Unit: &unit}
		if rec.Condition != "" {
			upd.Condition = &rec.Condition
		}
		if rec.Year > 0 {
			upd.AcquisitionYear = &rec.Year
		}
		if err := s.store.UpdateDetails(ctx, tx, id, upd); err != nil {
			return err
		}

		// 在庫はファイルの値に合わせる（差分を1回だけ ledger に流す）
		bal, err := s.ledger.Lock(ctx, tx, ledger.Equipment, id)
		if err != nil {
			return err
		}
		action = "updated"
		if delta := rec.Quantity - bal.Quantity; delta != 0 {
			_, err = s.ledger.Adjust(ctx, tx, ledger.Equipment, id, delta)
			return err
		}
		return nil
	})
	return action, err
}
