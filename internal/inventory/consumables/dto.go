package consumables

import "time"

// ===== Requests =====

type CreateItemRequest struct {
	Code     string `json:"code" binding:"required,max=50"`
	Name     string `json:"name" binding:"required,max=200"`
	Unit     string `json:"unit,omitempty" binding:"max=50"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

// 名称・単位のみ。在庫は入出庫でしか動かない。
type UpdateItemRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Unit *string `json:"unit,omitempty" binding:"omitempty,min=1,max=50"`
}

// quantity に binding は付けない（service が固有メッセージで弾く）
type InboundRequest struct {
	ItemID   int64  `json:"item_id" binding:"required,gt=0"`
	Quantity int    `json:"quantity"`
	Source   string `json:"source" binding:"max=200"`
	// "2006-01-02"、省略時は現在時刻
	Date *string `json:"date,omitempty"`
	Note *string `json:"note,omitempty"`
}

type OutboundRequest struct {
	ItemID    int64   `json:"item_id" binding:"required,gt=0"`
	Quantity  int     `json:"quantity"`
	Requester string  `json:"requester" binding:"max=200"`
	Purpose   string  `json:"purpose" binding:"max=200"`
	Date      *string `json:"date,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// ===== Responses =====

type ItemResponse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type MovementResponse struct {
	ID         int64     `json:"id"`
	ULID       string    `json:"ulid"`
	Direction  Direction `json:"direction"`
	ItemID     int64     `json:"item_id"`
	ItemCode   string    `json:"item_code"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source,omitempty"`
	Requester  string    `json:"requester,omitempty"`
	Purpose    string    `json:"purpose,omitempty"`
	Note       *string   `json:"note,omitempty"`
	RecordedBy *string   `json:"recorded_by,omitempty"`
	// 記録直後の残数（一覧では返さない）
	Remaining *int `json:"remaining,omitempty"`
}

type ListResult struct {
	Items      []MovementResponse `json:"items"`
	Total      int64              `json:"total"`
	NextOffset int                `json:"next_offset"`
}

type HistoryResponse struct {
	Item      ItemResponse       `json:"item"`
	Inbound   []MovementResponse `json:"inbound"`
	Outbound  []MovementResponse `json:"outbound"`
	TotalIn   int                `json:"total_in"`
	TotalOut  int                `json:"total_out"`
	Remaining int                `json:"remaining"`
}

func toItemResponse(it *Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Code:      it.Code,
		Name:      it.Name,
		Unit:      it.Unit,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
	}
}

func toMovementResponse(m *Movement) MovementResponse {
	r := MovementResponse{
		ID:         m.ID,
		ULID:       m.ULID,
		Direction:  m.Direction,
		ItemID:     m.ItemID,
		ItemCode:   m.ItemCode,
		ItemName:   m.ItemName,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt,
		Note:       nullToPtr(m.Note),
		RecordedBy: nullToPtr(m.RecordedBy),
	}
	switch m.Direction {
	case DirectionIn:
		r.Source = m.Party
	case DirectionOut:
		r.Requester = m.Party
		r.Purpose = m.Purpose
	}
	return r
}
