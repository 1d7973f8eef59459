package equipment

import (
	"database/sql"
	"time"
)

// Item は equipment_items の1行。quantity は貸出可能な在庫数（ledger 管理）。
type Item struct {
	ID              int64
	Code            string
	Name            string
	Unit            string
	Quantity        int
	Condition       string
	AcquisitionYear int
	Room            sql.NullString
	CreatedAt       time.Time
}

type ItemQuery struct {
	Q         string
	Condition string
}

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" | "desc"
}

type SummaryRow struct {
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	ItemCount     int    `json:"item_count"`
	Available     int    `json:"available"`
	OnLoan        int    `json:"on_loan"`
	TotalQuantity int    `json:"total_quantity"`
}
