package loans

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
)

// Loan は loans テーブルの1行（参照系では品目コード・名称を JOIN して持つ）
type Loan struct {
	ID         int64
	ULID       string
	ItemID     int64
	ItemCode   string
	ItemName   string
	Borrower   string
	Quantity   int
	Status     Status
	LoanedAt   time.Time
	DueOn      sql.NullTime
	ReturnedAt sql.NullTime
	LentBy     sql.NullString
	ReturnedBy sql.NullString
	Note       sql.NullString
}

// 貸出リスト取得用の検索条件
type LoanFilter struct {
	Status   *Status
	Borrower string
	ItemID   *int64
}

type Page struct {
	Limit  int
	Offset int
	Order  string
}
