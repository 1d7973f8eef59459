package consumables

import (
	"context"
	"crypto/rand"
	"database/sql"
	"io"
	"log"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"sarpras-backend/internal/inventory/importer"
	"sarpras-backend/internal/inventory/ledger"
	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/db"
)

const (
	defaultUnit = "Unit"
	dateLayout  = "2006-01-02"
)

// ---- Clock & ID ----

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ---- Service ----

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

// ===== items =====

func (s *Service) CreateItem(ctx context.Context, in CreateItemRequest) (ItemResponse, error) {
	it := &Item{
		Code:      strings.TrimSpace(in.Code),
		Name:      strings.TrimSpace(in.Name),
		Unit:      strings.TrimSpace(in.Unit),
		CreatedAt: s.clock.Now(),
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
		if in.Quantity > 0 {
			if _, err := s.ledger.Adjust(ctx, tx, ledger.Consumable, id, in.Quantity); err != nil {
				return err
			}
		}
		out, err = s.store.GetItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return ItemResponse{}, err
	}
	return toItemResponse(out), nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (ItemResponse, error) {
	it, err := s.store.GetItem(ctx, s.db, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return toItemResponse(it), nil
}

func (s *Service) ListItems(ctx context.Context, search string, onlyEmpty bool, p Page) ([]ItemResponse, int64, error) {
	rows, total, err := s.store.ListItems(ctx, search, onlyEmpty, p)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ItemResponse, 0, len(rows))
	for _, it := range rows {
		items = append(items, toItemResponse(it))
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
		if err := s.store.UpdateDetails(ctx, tx, id, in.Name, in.Unit); err != nil {
			return err
		}
		var err error
		out, err = s.store.GetItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return ItemResponse{}, err
	}
	return toItemResponse(out), nil
}

// ===== movements =====

// RecordInbound: 入庫。在庫加算と入庫行の挿入は同一Tx。
func (s *Service) RecordInbound(ctx context.Context, in InboundRequest, operator string) (MovementResponse, error) {
	if in.Quantity <= 0 {
		return MovementResponse{}, apierr.ErrInvalid("Jumlah harus lebih dari 0")
	}
	if in.Quantity > ledger.MaxQuantity {
		return MovementResponse{}, apierr.ErrInvalid(ledger.QuantityTooLargeMessage())
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		return MovementResponse{}, apierr.ErrInvalid("Sumber barang wajib diisi")
	}
	at, err := s.occurredAt(in.Date)
	if err != nil {
		return MovementResponse{}, err
	}

	m := &Movement{
		ULID:       s.id.NewULID(s.clock.Now()),
		Direction:  DirectionIn,
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		OccurredAt: at,
		Party:      source,
		Note:       toNullString(in.Note),
		RecordedBy: toNullString(&operator),
	}
	return s.record(ctx, m, in.Quantity)
}

// RecordOutbound: 出庫。在庫不足なら何も記録しない。
func (s *Service) RecordOutbound(ctx context.Context, in OutboundRequest, operator string) (MovementResponse, error) {
	if in.Quantity <= 0 {
		return MovementResponse{}, apierr.ErrInvalid("Jumlah harus lebih dari 0")
	}
	if in.Quantity > ledger.MaxQuantity {
		return MovementResponse{}, apierr.ErrInvalid(ledger.QuantityTooLargeMessage())
	}
	requester := strings.TrimSpace(in.Requester)
	purpose := strings.TrimSpace(in.Purpose)
	if requester == "" || purpose == "" {
		return MovementResponse{}, apierr.ErrInvalid("Pemohon dan keperluan wajib diisi")
	}
	at, err := s.occurredAt(in.Date)
	if err != nil {
		return MovementResponse{}, err
	}

	m := &Movement{
		ULID:       s.id.NewULID(s.clock.Now()),
		Direction:  DirectionOut,
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		OccurredAt: at,
		Party:      requester,
		Purpose:    purpose,
		Note:       toNullString(in.Note),
		RecordedBy: toNullString(&operator),
	}
	return s.record(ctx, m, -in.Quantity)
}

func (s *Service) record(ctx context.Context, m *Movement, delta int) (MovementResponse, error) {
	var bal ledger.Balance
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// 在庫ロック & 増減（出庫で不足なら InsufficientStockError → ROLLBACK）
		var err error
		bal, err = s.ledger.Adjust(ctx, tx, ledger.Consumable, m.ItemID, delta)
		if err != nil {
			return err
		}

		it, err := s.store.GetItem(ctx, tx, m.ItemID)
		if err != nil {
			return err
		}
		m.ItemCode, m.ItemName = it.Code, it.Name

		if m.Direction == DirectionIn {
			m.ID, err = s.store.InsertInbound(ctx, tx, m)
		} else {
			m.ID, err = s.store.InsertOutbound(ctx, tx, m)
		}
		return err
	})
	if err != nil {
		return MovementResponse{}, err
	}

	log.Printf("[INFO] consumable %s %s: item %d %+d (remaining %d)", m.Direction, m.ULID, m.ItemID, delta, bal.Quantity)
	resp := toMovementResponse(m)
	resp.Remaining = &bal.Quantity
	return resp, nil
}

func (s *Service) ListTransactions(ctx context.Context, f MovementFilter, p Page) (ListResult, error) {
	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		return ListResult{}, apierr.ErrInvalid("month must be between 1 and 12")
	}
	if f.Month != 0 && f.Year == 0 {
		return ListResult{}, apierr.ErrInvalid("month requires year")
	}

	rows, total, err := s.store.ListMovements(ctx, f, p)
	if err != nil {
		return ListResult{}, err
	}
	items := make([]MovementResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, toMovementResponse(m))
	}

	p = normalizePage(p)
	next := p.Offset + p.Limit
	if next >= int(total) {
		next = 0
	}
	return ListResult{Items: items, Total: total, NextOffset: next}, nil
}

// ItemHistory: 品目の入出庫一覧と合計。残数は ledger の値をそのまま返す（履歴から再計算しない）。
func (s *Service) ItemHistory(ctx context.Context, itemID int64) (HistoryResponse, error) {
	it, err := s.store.GetItem(ctx, s.db, itemID)
	if err != nil {
		return HistoryResponse{}, err
	}
	rows, err := s.store.AllMovementsForItem(ctx, itemID)
	if err != nil {
		return HistoryResponse{}, err
	}

	h := HistoryResponse{
		Item:      toItemResponse(it),
		Inbound:   []MovementResponse{},
		Outbound:  []MovementResponse{},
		Remaining: it.Quantity,
	}
	for _, m := range rows {
		r := toMovementResponse(m)
		if m.Direction == DirectionIn {
			h.Inbound = append(h.Inbound, r)
			h.TotalIn += m.Quantity
		} else {
			h.Outbound = append(h.Outbound, r)
			h.TotalOut += m.Quantity
		}
	}
	return h, nil
}

// ===== import =====

// Import: code で upsert。1行ごとに独立した Tx、失敗行は数えて続行。
func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (importer.Result, error) {
	recs, err := importer.Parse(filename, r)
	if err != nil {
		return importer.Result{}, err
	}
	return importer.Apply(ctx, string(ledger.Consumable), recs, s.importRow), nil
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
				Code:      rec.Code,
				Name:      rec.Name,
				Unit:      unit,
				CreatedAt: s.clock.Now(),
			})
			if err != nil {
				return err
			}
			if rec.Quantity > 0 {
				if _, err := s.ledger.Adjust(ctx, tx, ledger.Consumable, id, rec.Quantity); err != nil {
					return err
				}
			}
			action = "created"
			return nil
		}

		if err := s.store.UpdateDetails(ctx, tx, id, &rec.Name, &unit); err != nil {
			return err
		}
		bal, err := s.ledger.Lock(ctx, tx, ledger.Consumable, id)
		if err != nil {
			return err
		}
		action = "updated"
		if delta := rec.Quantity - bal.Quantity; delta != 0 {
			_, err = s.ledger.Adjust(ctx, tx, ledger.Consumable, id, delta)
			return err
		}
		return nil
	})
	return action, err
}

// ---- helpers ----

func (s *Service) occurredAt(date *string) (time.Time, error) {
	if date == nil || strings.TrimSpace(*date) == "" {
		return s.clock.Now(), nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*date))
	if err != nil {
		return time.Time{}, apierr.ErrInvalid("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

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
