package consumables

import (
	"database/sql"
	"time"
)

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Item は consumable_items（BHP）の1行
type Item struct {
	ID        int64
	Code      string
	Name      string
	Unit      string
	Quantity  int
	CreatedAt time.Time
}

// Movement は入庫・出庫どちらかの1行。Party は入庫なら仕入先、出庫なら請求者。
type Movement struct {
	ID         int64
	ULID       string
	Direction  Direction
	ItemID     int64
	ItemCode   string
	ItemName   string
	Quantity   int
	OccurredAt time.Time
	Party      string
	Purpose    string
	Note       sql.NullString
	RecordedBy sql.NullString
}

type MovementFilter struct {
	Direction *Direction
	ItemID    *int64
	Year      int
	Month     int
}

type Page struct {
	Limit  int
	Offset int
}
